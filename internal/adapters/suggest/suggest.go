// Package suggest fetches squad suggestions from an external HTTP service.
// Suggestions are never authoritative; callers validate them.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/squadcraft/internal/domain/selection"
)

const (
	defaultTimeout  = 5 * time.Second
	maxResponseSize = 1 << 20
)

// ErrUpstream wraps any failure talking to the suggestion service.
var ErrUpstream = errors.New("suggestion service error")

// Response is the expected suggestion payload.
type Response struct {
	PlayerIDs []string `json:"player_ids"`
	Notes     string   `json:"notes,omitempty"`
}

// HTTPSource posts selection requests to a suggestion endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

var _ selection.SuggestionSource = (*HTTPSource)(nil)

// Option configures the HTTPSource.
type Option func(*HTTPSource)

// WithTimeout bounds every suggestion call.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPSource) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// NewHTTPSource creates a source for url.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{url: url, client: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest returns the suggested player IDs.
func (s *HTTPSource) Suggest(ctx context.Context, req selection.Request) ([]string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", ErrUpstream, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	if len(out.PlayerIDs) == 0 {
		return nil, fmt.Errorf("%w: empty suggestion", ErrUpstream)
	}
	return out.PlayerIDs, nil
}
