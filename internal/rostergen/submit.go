package rostergen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/pkg/logger"
)

// Client posts JSON to a squadcraft service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Post sends body as JSON and decodes a JSON response into out when out is
// not nil. Any status outside 2xx is an error.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Submit posts fresh match records for the roster's players concurrently,
// then asks the service to recalculate every player.
func Submit(ctx context.Context, cfg Config, players []model.Player, records []model.PerformanceRecord) (Stats, error) {
	stats := Stats{StartTime: time.Now()}
	client := NewClient(cfg.BaseURL, cfg.Timeout)
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var submitted, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, r := range records {
		g.Go(func() error {
			if err := client.Post(gctx, "/performances", r, nil); err != nil {
				failed.Add(1)
				log.Debug(gctx, "performance rejected", logger.String("player_id", r.PlayerID), logger.Error(err))
				return nil
			}
			submitted.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	stats.Submitted = int(submitted.Load())
	stats.Failed = int(failed.Load())

	var recalc struct {
		Changes int `json:"changes"`
	}
	if err := client.Post(ctx, "/ratings/recalculate", map[string]any{}, &recalc); err != nil {
		return stats, err
	}
	stats.RatingChanges = recalc.Changes
	stats.Duration = time.Since(stats.StartTime)

	log.Info(ctx, "fresh matches submitted",
		logger.Int("players", len(players)),
		logger.Int("submitted", stats.Submitted),
		logger.Int("failed", stats.Failed),
		logger.Int("ratingChanges", stats.RatingChanges),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}
