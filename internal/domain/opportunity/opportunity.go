// Package opportunity measures how much game time each player has had against
// what they were available for.
package opportunity

import (
	"math"

	"github.com/okian/squadcraft/internal/domain/model"
)

// Defaults for the play-time target.
const (
	DefaultTarget  = 0.6
	wellCoveredAt  = 0.8
	needsGamesBand = 0.2
	ceilEpsilon    = 1e-9
)

// Status classifies a player's play-time ratio.
type Status string

const (
	StatusNew         Status = "NEW"
	StatusNeedsGames  Status = "NEEDS_GAMES"
	StatusBelowTarget Status = "BELOW_TARGET"
	StatusOnTrack     Status = "ON_TRACK"
	StatusWellCovered Status = "WELL_COVERED"
)

// Ordinal orders ratio-derived statuses from least to most covered.
// NEW has no ratio and returns -1.
func (s Status) Ordinal() int {
	switch s {
	case StatusNeedsGames:
		return 0
	case StatusBelowTarget:
		return 1
	case StatusOnTrack:
		return 2
	case StatusWellCovered:
		return 3
	default:
		return -1
	}
}

// Report is the per-player opportunity summary.
type Report struct {
	PlayerID    string  `json:"player_id"`
	Season      string  `json:"season,omitempty"`
	Available   int     `json:"available"`
	Played      int     `json:"played"`
	Ratio       float64 `json:"ratio"`
	Status      Status  `json:"status"`
	GamesNeeded int     `json:"games_needed"`
	Target      float64 `json:"target"`
}

// Ratio is played/available, or 0 when nothing was available.
func Ratio(s model.SeasonSnapshot) float64 {
	if s.MatchesAvailable <= 0 {
		return 0
	}
	return float64(s.MatchesPlayed) / float64(s.MatchesAvailable)
}

// ClassifyRatio maps a ratio to a status for the given target.
func ClassifyRatio(ratio, target float64) Status {
	switch {
	case ratio < target-needsGamesBand:
		return StatusNeedsGames
	case ratio < target:
		return StatusBelowTarget
	case ratio <= wellCoveredAt:
		return StatusOnTrack
	default:
		return StatusWellCovered
	}
}

// Classify returns NEW for players with no available matches, otherwise the
// ratio classification.
func Classify(s model.SeasonSnapshot, target float64) Status {
	if s.MatchesAvailable <= 0 {
		return StatusNew
	}
	return ClassifyRatio(Ratio(s), target)
}

// GamesNeeded is max(0, ceil(available*target) - played).
func GamesNeeded(s model.SeasonSnapshot, target float64) int {
	need := int(math.Ceil(float64(s.MatchesAvailable)*target-ceilEpsilon)) - s.MatchesPlayed
	if need < 0 {
		return 0
	}
	return need
}

// Evaluate builds the full report. A non-positive target falls back to DefaultTarget.
func Evaluate(s model.SeasonSnapshot, target float64) Report {
	if target <= 0 {
		target = DefaultTarget
	}
	return Report{
		PlayerID:    s.PlayerID,
		Season:      s.Season,
		Available:   s.MatchesAvailable,
		Played:      s.MatchesPlayed,
		Ratio:       Ratio(s),
		Status:      Classify(s, target),
		GamesNeeded: GamesNeeded(s, target),
		Target:      target,
	}
}
