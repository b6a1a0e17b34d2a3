package rating

import (
	"time"

	"github.com/okian/squadcraft/internal/domain/dedupe"
)

// Option applies a configuration option to the Blender.
type Option func(*Blender)

// WithLookback sets how many of the most recent matches are averaged.
func WithLookback(n int) Option {
	return func(b *Blender) {
		if n > 0 {
			b.lookback = n
		}
	}
}

// WithCurrentWeight sets the share of the current rating kept in the blend.
// The performance average receives the remainder.
func WithCurrentWeight(w float64) Option {
	return func(b *Blender) {
		if w >= 0 && w <= 1 {
			b.currentWeight = w
		}
	}
}

// WithTracker enables consumed-performance tracking: a performance that
// already moved a rating is not averaged into that rating again.
func WithTracker(d dedupe.Deduper) Option {
	return func(b *Blender) {
		b.tracker = d
	}
}

// WithClock overrides the time source stamped onto changes.
func WithClock(now func() time.Time) Option {
	return func(b *Blender) {
		if now != nil {
			b.now = now
		}
	}
}
