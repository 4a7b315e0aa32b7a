// Package gemini adapts the google.golang.org/genai streaming API to a
// normalized chunk stream.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sync"

	"google.golang.org/genai"

	"github.com/isc-ai/engine/config"
	"github.com/isc-ai/engine/credentials"
	"github.com/isc-ai/engine/modes"
)

// placeholderPrompt is sent as the text part when the caller supplies only
// images. The model must never receive an empty text part.
const placeholderPrompt = "Analyze the provided image(s) and generate the required complete, runnable Java code strictly according to the system instructions."

// queryPrefix frames the caller's free-text query for the model.
const queryPrefix = "User Query: "

// Generator is the narrow interface the HTTP layer depends on.
type Generator interface {
	GenerateStream(ctx context.Context, mode modes.Config, history []Turn, query string, images []ImagePayload) (<-chan Chunk, <-chan error)
}

// Client talks to Gemini through the Vertex AI backend.
type Client struct {
	cfg    *config.Config
	logger *log.Logger

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewClient returns a Client. The underlying genai client is constructed
// lazily on first use so credential staging happens first.
func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg, logger: log.Default()}
}

func (c *Client) genaiClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		credentials.Ensure(c.cfg)
		c.client, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  c.cfg.GoogleCloudProject,
			Location: c.cfg.GoogleCloudLocation,
		})
	})
	return c.client, c.initErr
}

// GenerateStream builds one generation request and returns a live chunk
// stream. The sequence is single-pass: each receive may block on network I/O.
// A failure before the first chunk arrives on the error channel with nothing
// on the chunk channel; both channels are closed when the stream ends.
func (c *Client) GenerateStream(ctx context.Context, mode modes.Config, history []Turn, query string, images []ImagePayload) (<-chan Chunk, <-chan error) {
	chunkChan := make(chan Chunk)
	errChan := make(chan error, 1)

	go func() {
		defer close(chunkChan)
		defer close(errChan)

		client, err := c.genaiClient(ctx)
		if err != nil {
			errChan <- fmt.Errorf("failed to create gemini client: %w", err)
			return
		}

		contents, err := c.buildContents(history, query, images)
		if err != nil {
			errChan <- err
			return
		}

		for resp, err := range client.Models.GenerateContentStream(ctx, mode.ModelName, contents, generationConfig(mode)) {
			if err != nil {
				errChan <- fmt.Errorf("gemini stream error: %w", err)
				return
			}
			for _, chunk := range normalizeResponse(resp) {
				select {
				case chunkChan <- chunk:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}
	}()

	return chunkChan, errChan
}

// generationConfig maps a mode onto call-scoped genai configuration. The mode
// itself is never mutated.
func generationConfig(mode modes.Config) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(mode.Temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: mode.SystemInstruction}},
		},
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingLevel:   genai.ThinkingLevelHigh,
		},
	}
	for _, tool := range mode.Tools {
		switch tool {
		case modes.ToolGoogleSearch:
			cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		}
	}
	return cfg
}

// buildContents assembles prior history verbatim followed by the current user
// turn: one text part, then one inline part per usable image.
func (c *Client) buildContents(history []Turn, query string, images []ImagePayload) ([]*genai.Content, error) {
	contents := []*genai.Content{}

	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = genai.RoleUser
		}
		parts := []*genai.Part{}
		for _, p := range turn.Parts {
			if p.Text != "" {
				parts = append(parts, &genai.Part{Text: p.Text})
				continue
			}
			if p.InlineData != nil {
				data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					c.logger.Printf("Skipping undecodable inline data in history turn: %v", err)
					continue
				}
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{MIMEType: p.InlineData.MimeType, Data: data},
				})
			}
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	text := placeholderPrompt
	if query != "" {
		text = queryPrefix + query
	}
	parts := []*genai.Part{{Text: text}}

	for _, img := range images {
		if img.Base64 == "" || img.MimeType == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.Base64)
		if err != nil {
			c.logger.Printf("Skipping undecodable image payload (%s): %v", img.MimeType, err)
			continue
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: img.MimeType, Data: data},
		})
	}

	contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	return contents, nil
}

// normalizeResponse folds one provider response into normalized chunks:
// text parts first (thought or answer), then one grounding chunk if the
// candidate carries citation metadata.
func normalizeResponse(resp *genai.GenerateContentResponse) []Chunk {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	cand := resp.Candidates[0]

	chunks := []Chunk{}
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part.Text == "" {
				continue
			}
			kind := ChunkAnswer
			if part.Thought {
				kind = ChunkThought
			}
			chunks = append(chunks, Chunk{Kind: kind, Text: part.Text})
		}
	}

	if cand.GroundingMetadata != nil {
		sources := []Source{}
		for _, gc := range cand.GroundingMetadata.GroundingChunks {
			if gc == nil {
				continue
			}
			src := Source{}
			if gc.Web != nil {
				src.Web = &WebSource{URI: gc.Web.URI, Title: gc.Web.Title, Domain: gc.Web.Domain}
			}
			sources = append(sources, src)
		}
		chunks = append(chunks, Chunk{Kind: ChunkGrounding, Sources: sources})
	}

	return chunks
}
