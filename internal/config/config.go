// Package config holds process configuration for the squadcraft service.
//
// Values are layered: defaults from New, then an optional YAML file named by
// SQUADCRAFT_CONFIG, then SQUADCRAFT_* environment variables.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Composer names accepted by the composer key.
const (
	ComposerDeterministic = "deterministic"
	ComposerSuggestion    = "suggestion"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the rating job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of rating workers and the bulk recalculation fan-out.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the consumed-match tracker and the job id tracker.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxPoolSize caps the number of candidates accepted per request.
	MaxPoolSize int `koanf:"max_pool_size"`

	SquadSize        int `koanf:"squad_size"`
	MinBowlers       int `koanf:"min_bowlers"`
	BowlingThreshold int `koanf:"bowling_threshold"`
	RebalanceCap     int `koanf:"rebalance_cap"`

	// OpportunityTarget is the share of available matches a player should play.
	OpportunityTarget float64 `koanf:"opportunity_target"`
	// OpportunityWeight scales the (1 - ratio) term of the selection score.
	OpportunityWeight float64 `koanf:"opportunity_weight"`

	// Lookback is the number of recent matches blended into a rating.
	Lookback int `koanf:"lookback"`

	// Composer is deterministic or suggestion.
	Composer            string `koanf:"composer"`
	SuggestionURL       string `koanf:"suggestion_url"`
	SuggestionTimeoutMS int    `koanf:"suggestion_timeout_ms"`

	// RosterFile seeds the store at startup when set.
	RosterFile string `koanf:"roster_file"`
	// LedgerFile mirrors applied rating changes as JSON lines when set.
	LedgerFile string `koanf:"ledger_file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          50_000,
		MaxPoolSize:         200,
		SquadSize:           11,
		MinBowlers:          4,
		BowlingThreshold:    6,
		RebalanceCap:        10,
		OpportunityTarget:   0.6,
		OpportunityWeight:   10,
		Lookback:            5,
		Composer:            ComposerDeterministic,
		SuggestionTimeoutMS: 2000,
	}
}

// SuggestionTimeout returns the suggestion call budget as a duration.
func (c *Config) SuggestionTimeout() time.Duration {
	return time.Duration(c.SuggestionTimeoutMS) * time.Millisecond
}

// Validate reports the first setting that cannot run.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SquadSize < 1:
		return fmt.Errorf("%w: squad_size must be at least 1", ErrInvalidConfig)
	case c.OpportunityTarget <= 0 || c.OpportunityTarget > 1:
		return fmt.Errorf("%w: opportunity_target must be in (0,1]", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.Lookback < 1:
		return fmt.Errorf("%w: lookback must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Composer) {
	case ComposerDeterministic:
	case ComposerSuggestion:
		if c.SuggestionURL == "" {
			return fmt.Errorf("%w: suggestion composer needs suggestion_url", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown composer %q", ErrInvalidConfig, c.Composer)
	}
	return nil
}
