package router

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isc-ai/engine/config"
	"github.com/isc-ai/engine/credentials"
	"github.com/isc-ai/engine/gemini"
	"github.com/isc-ai/engine/media"
	"github.com/isc-ai/engine/modes"
	"github.com/isc-ai/engine/stores"
	"github.com/isc-ai/engine/stream"
)

// Usage gate identity for unauthenticated generation calls.
const (
	guestUserID   = "guest_user"
	usageCategory = "academic"
	usageFeature  = "computer"
)

// mediaFallbackQuery is searched when the caller sent only images.
const mediaFallbackQuery = "Java programming exercise related to image context"

const limitExceededMessage = "Daily limit exceeded for Academic (Computer Science)."

// MediaSearcher is the media search adapter's narrow interface.
type MediaSearcher interface {
	Search(ctx context.Context, query, scopeID string) media.ResultSet
}

// Handlers carries the collaborators each route needs.
type Handlers struct {
	Config    *config.Config
	Gate      stores.UsageStore
	Sessions  SessionChecker
	Generator gemini.Generator
	Media     MediaSearcher
	Composer  *stream.Composer
	Logger    *log.Logger
}

type imagePayload struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

type computerRequest struct {
	Query   string         `json:"query"`
	Mode    string         `json:"mode"`
	Image   *imagePayload  `json:"image"`
	Images  []imagePayload `json:"images"`
	History []gemini.Turn  `json:"history"`
}

// apiError is a pre-stream failure that still maps to an HTTP status.
type apiError struct {
	status  int
	payload gin.H
}

// GetToken returns the caller's raw session token. 401 without a session,
// 404 when the session exists but no token cookie is readable.
func (h *Handlers) GetToken(c *gin.Context) {
	ok, err := h.Sessions.Session(c.Request)
	if err != nil {
		h.Logger.Printf("Session check error: %v", err)
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token := sessionToken(c.Request)
	if token == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Computer runs one generation request and streams the tagged frame response.
func (h *Handlers) Computer(c *gin.Context) {
	var req computerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strm, apiErr := h.runPipeline(c.Request.Context(), &req)
	if apiErr != nil {
		c.JSON(apiErr.status, apiErr.payload)
		return
	}

	// From here on the status is committed; failures go in-band.
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Transfer-Encoding", "chunked")
	c.Status(http.StatusOK)

	if err := strm.WriteTo(c.Writer); err != nil {
		h.Logger.Printf("Stream write error: %v", err)
	}
}

// runPipeline performs the gate check, launches the media search and the
// generation call concurrently, and composes the stream. Every failure before
// the first generated chunk is returned as an apiError; the stream handles
// the rest in-band.
func (h *Handlers) runPipeline(ctx context.Context, req *computerRequest) (*stream.Stream, *apiError) {
	mode := modes.Resolve(req.Mode)

	decision, err := h.Gate.CheckLimit(guestUserID, usageCategory, usageFeature)
	if err != nil {
		h.Logger.Printf("Usage gate error: %v", err)
		return nil, &apiError{http.StatusInternalServerError, gin.H{"error": "usage check failed"}}
	}
	if !decision.Allowed {
		return nil, &apiError{http.StatusTooManyRequests, gin.H{"error": limitExceededMessage, "remaining": 0}}
	}
	if err := h.Gate.IncrementUsage(guestUserID, usageCategory, usageFeature); err != nil {
		h.Logger.Printf("Failed to record usage: %v", err)
	}

	credentials.Ensure(h.Config)

	images := req.Images
	if len(images) == 0 && req.Image != nil {
		images = []imagePayload{*req.Image}
	}
	payloads := make([]gemini.ImagePayload, 0, len(images))
	for _, img := range images {
		payloads = append(payloads, gemini.ImagePayload{Base64: img.Base64, MimeType: img.MimeType})
	}
	if len(payloads) > 0 {
		h.Logger.Printf("Processing multimodal request with %d images in mode: %s", len(payloads), mode.Key)
	}

	mediaQuery := req.Query
	if mediaQuery == "" {
		mediaQuery = mediaFallbackQuery
	}
	mediaCh := make(chan media.ResultSet, 1)
	go func() {
		mediaCh <- h.Media.Search(ctx, mediaQuery, h.Config.SearchScope(mode.Key))
	}()

	chunks, errs := h.Generator.GenerateStream(ctx, mode, req.History, req.Query, payloads)

	// Media must resolve before the first frame: the media frame leads.
	results := <-mediaCh

	strm, err := h.Composer.Compose(results, chunks, errs)
	if err != nil {
		h.Logger.Printf("General API error: %v", err)
		return nil, &apiError{http.StatusInternalServerError, gin.H{"error": err.Error()}}
	}
	return strm, nil
}
