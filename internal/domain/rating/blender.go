// Package rating blends a player's current skill ratings with averaged
// recent performance scores and labels recent form.
package rating

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/squadcraft/internal/domain/dedupe"
	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/performance"
)

// Blend defaults.
const (
	DefaultLookback      = 5
	DefaultCurrentWeight = 0.7
)

const roundEpsilon = 1e-9

// Result is the outcome of blending one player.
type Result struct {
	PlayerID        string               `json:"player_id"`
	Changes         []model.RatingChange `json:"changes"`
	Form            model.Form           `json:"form,omitempty"`
	FormAverage     float64              `json:"form_average"`
	Excluded        bool                 `json:"excluded"`
	ExclusionReason string               `json:"exclusion_reason,omitempty"`
}

// Blender computes rating changes. It holds no per-player state apart from
// the optional consumed-performance tracker.
type Blender struct {
	lookback      int
	currentWeight float64
	tracker       dedupe.Deduper
	now           func() time.Time
}

// New creates a Blender with configuration options.
func New(opts ...Option) *Blender {
	b := &Blender{
		lookback:      DefaultLookback,
		currentWeight: DefaultCurrentWeight,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Lookback returns the configured window length.
func (b *Blender) Lookback() int { return b.lookback }

// Window returns a blender over the n most recent matches that shares b's
// tracker. A non-positive n returns b.
func (b *Blender) Window(n int) *Blender {
	if n <= 0 || n == b.lookback {
		return b
	}
	c := *b
	c.lookback = n
	return &c
}

// Release returns the performances behind changes to the unconsumed state,
// for changes that were computed by Blend but never applied.
func (b *Blender) Release(ctx context.Context, changes []model.RatingChange) {
	if b.tracker == nil {
		return
	}
	for _, c := range changes {
		for _, id := range c.MatchIDs {
			b.tracker.Unrecord(ctx, consumedKey(c.PlayerID, c.Discipline, id))
		}
	}
}

// Blend computes the player's rating changes and marks the performances
// behind each emitted change as consumed.
func (b *Blender) Blend(ctx context.Context, p model.Player, records []model.PerformanceRecord) Result {
	return b.blend(ctx, p, records, true)
}

// Preview computes the same result as Blend without consuming anything.
func (b *Blender) Preview(ctx context.Context, p model.Player, records []model.PerformanceRecord) Result {
	return b.blend(ctx, p, records, false)
}

func (b *Blender) blend(ctx context.Context, p model.Player, records []model.PerformanceRecord, commit bool) Result {
	res := Result{PlayerID: p.ID}
	if p.ExcludeFromAutoRating {
		res.Excluded = true
		res.ExclusionReason = p.ExclusionReason
		return res
	}

	own := make([]model.PerformanceRecord, 0, len(records))
	for _, r := range records {
		if r.PlayerID == "" || r.PlayerID == p.ID {
			own = append(own, r)
		}
	}
	res.Form, res.FormAverage, _ = ClassifyForm(own, b.lookback)

	win := window(own, b.lookback)
	for _, d := range model.Disciplines {
		current, _ := p.Skills.Get(d)

		var scores []float64
		var used []string
		for _, r := range win {
			if b.tracker != nil && b.tracker.Seen(ctx, consumedKey(p.ID, d, r.MatchID)) {
				continue
			}
			s := performance.Score(r).Get(d)
			if !performance.Valid(s) {
				continue
			}
			scores = append(scores, s)
			used = append(used, r.MatchID)
		}
		if len(scores) == 0 {
			continue
		}

		avg := stat.Mean(scores, nil)
		next := b.Rate(current, avg)
		if next == current {
			continue
		}

		res.Changes = append(res.Changes, model.RatingChange{
			ID:           uuid.NewString(),
			PlayerID:     p.ID,
			Discipline:   d,
			Previous:     current,
			New:          next,
			Delta:        next - current,
			AverageScore: avg,
			SampleSize:   len(scores),
			MatchIDs:     used,
			Reason:       fmt.Sprintf("%s average %.2f over %d matches", d, avg, len(scores)),
			AppliedAt:    b.now(),
		})
		if commit && b.tracker != nil {
			for _, id := range used {
				b.tracker.SeenAndRecord(ctx, consumedKey(p.ID, d, id))
			}
		}
	}
	return res
}

// Rate blends one rating with an averaged score and rounds to the nearest
// whole rating within [1,10].
func (b *Blender) Rate(current int, avg float64) int {
	blended := float64(current)*b.currentWeight + avg*(1-b.currentWeight)
	blended = math.Max(model.MinRating, math.Min(model.MaxRating, blended))
	return model.ClampRating(int(math.Round(blended + roundEpsilon)))
}

// window returns the n most recent records, newest first. Records sharing a
// date keep their input order.
func window(records []model.PerformanceRecord, n int) []model.PerformanceRecord {
	sorted := make([]model.PerformanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchDate.After(sorted[j].MatchDate)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func consumedKey(playerID string, d model.Discipline, matchID string) string {
	return dedupe.Key(playerID, string(d), matchID)
}
