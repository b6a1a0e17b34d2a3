package selection

import (
	"github.com/okian/squadcraft/internal/domain/scoring"
	"github.com/okian/squadcraft/pkg/logger"
)

// Option applies a configuration option to the Allocator.
type Option func(*Allocator)

// WithScorer sets the selection scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(a *Allocator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// WithSquadSize sets the default squad size used when a request gives none.
func WithSquadSize(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.squadSize = n
		}
	}
}

// WithMinBowlers sets the soft bowling quota for a full squad.
func WithMinBowlers(n int) Option {
	return func(a *Allocator) {
		if n >= 0 {
			a.minBowlers = n
		}
	}
}

// WithBowlingThreshold sets the bowling skill from which any player counts
// as bowling-capable.
func WithBowlingThreshold(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.bowlingThreshold = n
		}
	}
}

// WithRebalanceCap sets the minimum iteration cap for split rebalancing.
func WithRebalanceCap(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.rebalanceCap = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.log = l
		}
	}
}
