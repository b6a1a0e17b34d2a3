package service

import (
	"github.com/okian/squadcraft/internal/adapters/repository"
	"github.com/okian/squadcraft/internal/domain/selection"
	"github.com/okian/squadcraft/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of rating workers and the bulk fan-out.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the rating job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the consumed-match and job id trackers.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxPoolSize caps candidates per request. Zero disables the cap.
func WithMaxPoolSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxPoolSize = n
		}
	}
}

// WithSquadSize sets the default squad size.
func WithSquadSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.squadSize = n
		}
	}
}

// WithMinBowlers sets the bowling quota.
func WithMinBowlers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minBowlers = n
		}
	}
}

// WithBowlingThreshold sets the bowling skill that makes a player bowling-capable.
func WithBowlingThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bowlingThreshold = n
		}
	}
}

// WithRebalanceCap bounds split rebalancing moves.
func WithRebalanceCap(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.rebalanceCap = n
		}
	}
}

// WithOpportunityTarget sets the play-time target ratio.
func WithOpportunityTarget(t float64) Option {
	return func(s *Service) {
		if t > 0 && t <= 1 {
			s.opportunityTarget = t
		}
	}
}

// WithOpportunityWeight sets the weight of the play-time term in selection scores.
func WithOpportunityWeight(w float64) Option {
	return func(s *Service) {
		if w > 0 {
			s.opportunityWeight = w
		}
	}
}

// WithLookback sets the default rating window.
func WithLookback(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.lookback = n
		}
	}
}

// WithStore replaces the in-memory roster store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLedger replaces the in-memory rating ledger.
func WithLedger(l *repository.Ledger) Option {
	return func(s *Service) {
		if l != nil {
			s.ledger = l
		}
	}
}

// WithSuggestionSource composes squads from external suggestions, falling
// back to the deterministic squad.
func WithSuggestionSource(src selection.SuggestionSource) Option {
	return func(s *Service) {
		s.suggest = src
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
