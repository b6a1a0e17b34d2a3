// Package selection builds team compositions from scored players: a
// quota-respecting match XI and two balanced two-way splits.
//
// The splits are greedy heuristics. They guarantee membership and size
// balance, not an optimal skill balance.
package selection

import (
	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/scoring"
	"github.com/okian/squadcraft/pkg/logger"
)

// Defaults.
const (
	DefaultSquadSize        = 11
	DefaultMinBowlers       = 4
	DefaultBowlingThreshold = 6
	DefaultRebalanceCap     = 10

	keySkill = 8
)

// Allocator assigns candidates to teams. It is safe for concurrent use.
type Allocator struct {
	scorer           *scoring.Scorer
	squadSize        int
	minBowlers       int
	bowlingThreshold int
	rebalanceCap     int
	log              logger.Logger
}

// New creates an Allocator with configuration options.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		scorer:           scoring.New(),
		squadSize:        DefaultSquadSize,
		minBowlers:       DefaultMinBowlers,
		bowlingThreshold: DefaultBowlingThreshold,
		rebalanceCap:     DefaultRebalanceCap,
		log:              logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SquadSize returns the default squad size.
func (a *Allocator) SquadSize() int { return a.squadSize }

// quota is the bowling quota for a squad of the given size.
func (a *Allocator) quota(target int) int {
	return min(a.minBowlers, target)
}

func (a *Allocator) bowlingCapable(p model.Player) bool {
	return p.BowlingCapable(a.bowlingThreshold)
}
