// Package performance converts one match's raw counters into bounded
// per-discipline scores.
package performance

import (
	"math"

	"github.com/okian/squadcraft/internal/domain/model"
)

// DidNotParticipate marks a discipline the player took no part in. Such
// scores are excluded from every average.
const DidNotParticipate = -1.0

const (
	baseScore = 5.0
	minScore  = 1.0
	maxScore  = 10.0

	ballsPerOver         = 6
	slowStrikeMinBalls   = 10
	illegalDeliveryLimit = 5
)

// Scores holds one match's discipline scores.
type Scores struct {
	MatchID  string  `json:"match_id"`
	Batting  float64 `json:"batting"`
	Bowling  float64 `json:"bowling"`
	Fielding float64 `json:"fielding"`
}

// Get returns the score for a discipline.
func (s Scores) Get(d model.Discipline) float64 {
	switch d {
	case model.DisciplineBatting:
		return s.Batting
	case model.DisciplineBowling:
		return s.Bowling
	default:
		return s.Fielding
	}
}

// Valid reports whether v is a real score rather than the sentinel.
func Valid(v float64) bool { return v != DidNotParticipate }

// Score computes all three discipline scores for a record.
func Score(r model.PerformanceRecord) Scores {
	return Scores{
		MatchID:  r.MatchID,
		Batting:  Batting(r),
		Bowling:  Bowling(r),
		Fielding: Fielding(r),
	}
}

// Batting scores an innings, or returns DidNotParticipate if the player did not bat.
func Batting(r model.PerformanceRecord) float64 {
	if !r.Batted {
		return DidNotParticipate
	}
	score := baseScore

	switch {
	case r.Runs >= 100:
		score += 3
	case r.Runs >= 50:
		score += 2.5
	case r.Runs >= 30:
		score += 1.5
	case r.Runs >= 20:
		score += 1
	case r.Runs >= 10:
		score += 0.5
	case r.Runs < 5 && !r.NotOut:
		score--
	}

	if r.BallsFaced > 0 {
		sr := float64(r.Runs) / float64(r.BallsFaced) * 100
		switch {
		case sr >= 150:
			score++
		case sr >= 120:
			score += 0.5
		case sr < 70 && r.BallsFaced >= slowStrikeMinBalls:
			score -= 0.5
		}
	}

	switch b := r.Boundaries(); {
	case b >= 8:
		score += 0.5
	case b >= 5:
		score += 0.25
	}

	if r.NotOut && r.Runs >= 20 {
		score += 0.5
	}
	if r.PlayerOfMatch {
		score += 0.5
	}
	return finalize(score, r.Importance)
}

// Bowling scores a bowling spell, or returns DidNotParticipate if the player did not bowl.
func Bowling(r model.PerformanceRecord) float64 {
	if !r.Bowled {
		return DidNotParticipate
	}
	score := baseScore

	switch {
	case r.Wickets >= 5:
		score += 3
	case r.Wickets >= 3:
		score += 2
	case r.Wickets >= 2:
		score += 1.5
	case r.Wickets >= 1:
		score += 0.75
	default:
		score -= 0.5
	}

	if balls := r.LegalBalls(); balls > 0 {
		economy := float64(r.RunsConceded) / (float64(balls) / ballsPerOver)
		switch {
		case economy <= 4:
			score += 1.5
		case economy <= 6:
			score++
		case economy <= 8:
			score += 0.5
		case economy > 10:
			score--
		}
	}

	switch {
	case r.Maidens >= 2:
		score += 0.5
	case r.Maidens >= 1:
		score += 0.25
	}

	if r.IllegalDeliveries() >= illegalDeliveryLimit {
		score -= 0.5
	}
	if r.PlayerOfMatch {
		score += 0.5
	}
	return finalize(score, r.Importance)
}

// Fielding always returns a score: every player is assumed to field.
func Fielding(r model.PerformanceRecord) float64 {
	score := baseScore

	switch {
	case r.Catches >= 3:
		score += 2
	case r.Catches >= 2:
		score += 1.5
	case r.Catches >= 1:
		score += 0.75
	}

	switch {
	case r.RunOuts >= 2:
		score++
	case r.RunOuts >= 1:
		score += 0.5
	}

	switch {
	case r.Stumpings >= 2:
		score++
	case r.Stumpings >= 1:
		score += 0.5
	}

	switch {
	case r.DroppedCatches >= 2:
		score -= 1.5
	case r.DroppedCatches >= 1:
		score -= 0.75
	}
	return finalize(score, r.Importance)
}

func finalize(score float64, tier model.ImportanceTier) float64 {
	score *= tier.Multiplier()
	return math.Max(minScore, math.Min(maxScore, score))
}
