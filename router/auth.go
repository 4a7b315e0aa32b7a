package router

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Session cookie names set by the auth frontend.
const (
	sessionCookie       = "authjs.session-token"
	secureSessionCookie = "__Secure-authjs.session-token"
)

// SessionChecker validates that the caller has a live session. The identity
// provider itself is an external collaborator; this is its narrow interface.
type SessionChecker interface {
	Session(r *http.Request) (bool, error)
}

// AuthServiceChecker asks an external auth endpoint whether the caller's
// cookies belong to a live session.
type AuthServiceChecker struct {
	URL    string
	Client *http.Client
}

// NewAuthServiceChecker returns a checker against the given session endpoint.
func NewAuthServiceChecker(url string) *AuthServiceChecker {
	return &AuthServiceChecker{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Session forwards the caller's cookies to the auth endpoint. A 2xx response
// with a non-empty session body counts as a live session.
func (a *AuthServiceChecker) Session(r *http.Request) (bool, error) {
	if a.URL == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, a.URL, nil)
	if err != nil {
		return false, fmt.Errorf("error creating session request: %w", err)
	}
	if cookie := r.Header.Get("Cookie"); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return false, fmt.Errorf("error calling auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return false, fmt.Errorf("error reading auth service response: %w", err)
	}

	trimmed := strings.TrimSpace(string(body))
	return trimmed != "" && trimmed != "null" && trimmed != "{}", nil
}

// sessionToken pulls the session token out of the request cookies, preferring
// the plain name over the secure-prefixed variant.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if c, err := r.Cookie(secureSessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}
