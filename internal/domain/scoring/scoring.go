// Package scoring turns a player's attributes into comparable scalars: the
// role-weighted overall rating and the mode-dependent selection score.
package scoring

import (
	"fmt"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/opportunity"
)

// Default scoring constants.
const (
	defaultOpportunityWeight = 10.0
	defaultPitchBonus        = 1.5
	defaultInjuredPenalty    = 10.0
	defaultRecoveringPenalty = 3.0
	defaultNigglePenalty     = 1.0
	defaultCaptainBonus      = 3.0
	pressureMidpoint         = 5.0
	pressureFactor           = 0.2
)

// Selection is the scored view of one candidate.
type Selection struct {
	PlayerID string
	Score    float64
	// Eligible is false when the mode rules the player out entirely.
	Eligible bool
	Ratio    float64
	Factors  []string
}

// Scorer computes selection scores. The zero value is not usable; call New.
type Scorer struct {
	opportunityWeight float64
	pitchBonus        float64
	injuredPenalty    float64
	recoveringPenalty float64
	nigglePenalty     float64
	captainBonus      float64
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		opportunityWeight: defaultOpportunityWeight,
		pitchBonus:        defaultPitchBonus,
		injuredPenalty:    defaultInjuredPenalty,
		recoveringPenalty: defaultRecoveringPenalty,
		nigglePenalty:     defaultNigglePenalty,
		captainBonus:      defaultCaptainBonus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FormBonus is the additive bonus for a form label. Unknown form counts as average.
func FormBonus(f model.Form) float64 {
	switch f {
	case model.FormExcellent:
		return 3
	case model.FormGood:
		return 2
	case model.FormPoor:
		return 0
	default:
		return 1
	}
}

// Base is the form-adjusted mean of all six skills.
func Base(c model.Candidate) float64 {
	return c.Player.Skills.Mean() + FormBonus(c.Snapshot.CurrentForm)
}

// SelectionScore scores a candidate for one fixture under the given mode.
// mc may be nil when no fixture is known.
func (s *Scorer) SelectionScore(c model.Candidate, mode model.Mode, mc *model.MatchContext) Selection {
	p := c.Player
	ratio := opportunity.Ratio(c.Snapshot)
	sel := Selection{PlayerID: p.ID, Eligible: true, Ratio: ratio}

	score := Base(c)
	sel.Factors = append(sel.Factors, fmt.Sprintf("base %.2f", score))

	switch mode {
	case model.ModeOpportunityFocused:
		if p.Injury == model.InjuryInjured {
			sel.Eligible = false
			sel.Factors = append(sel.Factors, "injured: excluded")
		}
		term := (1 - ratio) * s.opportunityWeight
		score += term
		sel.Factors = append(sel.Factors, fmt.Sprintf("opportunity +%.2f", term))
		if p.Injury == model.InjuryRecovering {
			score -= s.recoveringPenalty
			sel.Factors = append(sel.Factors, fmt.Sprintf("recovering -%.1f", s.recoveringPenalty))
		}
	case model.ModeBalanced:
		term := (1 - ratio) * s.opportunityWeight / 2
		score += term
		sel.Factors = append(sel.Factors, fmt.Sprintf("opportunity +%.2f", term))
		score -= s.injuryPenalty(p.Injury, &sel)
	default:
		score -= s.injuryPenalty(p.Injury, &sel)
	}

	if mc != nil {
		score += s.pitchAdjustment(p, mc, &sel)
		if mc.Importance.HighStakes() {
			adj := (float64(p.Skills.PressureHandling) - pressureMidpoint) * pressureFactor
			score += adj
			sel.Factors = append(sel.Factors, fmt.Sprintf("pressure %+.2f", adj))
		}
	}

	if rank := c.CaptainChoiceRank; rank > 0 {
		bonus := s.captainBonus / float64(rank)
		score += bonus
		sel.Factors = append(sel.Factors, fmt.Sprintf("captain's choice #%d +%.2f", rank, bonus))
	}

	sel.Score = score
	return sel
}

func (s *Scorer) injuryPenalty(status model.InjuryStatus, sel *Selection) float64 {
	var penalty float64
	switch status {
	case model.InjuryInjured:
		penalty = s.injuredPenalty
	case model.InjuryRecovering:
		penalty = s.recoveringPenalty
	case model.InjuryMinorNiggle:
		penalty = s.nigglePenalty
	default:
		return 0
	}
	sel.Factors = append(sel.Factors, fmt.Sprintf("%s -%.1f", status, penalty))
	return penalty
}

func (s *Scorer) pitchAdjustment(p model.Player, mc *model.MatchContext, sel *Selection) float64 {
	style := p.BowlingStyle
	switch {
	case mc.Venue.Pitch == model.PitchSpinFriendly && style.IsSpin(),
		mc.Venue.Pitch == model.PitchPaceFriendly && style.IsPace():
		sel.Factors = append(sel.Factors, fmt.Sprintf("%s suits %s pitch +%.1f", style, mc.Venue.Pitch, s.pitchBonus))
		return s.pitchBonus
	}
	return 0
}
