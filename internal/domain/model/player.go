// Package model contains the roster, match and output types shared by the engine,
// its adapters and the HTTP layer.
package model

// Skill bounds. Every skill rating, experience and fitness value stays within them.
const (
	MinRating = 1
	MaxRating = 10
)

// Skills holds a player's per-discipline ratings, each in [1,10].
type Skills struct {
	Batting          int `json:"batting"`
	Bowling          int `json:"bowling"`
	Fielding         int `json:"fielding"`
	PowerHitting     int `json:"power_hitting"`
	Running          int `json:"running"`
	PressureHandling int `json:"pressure_handling"`
}

// Mean is the unweighted average of all six skills.
func (s Skills) Mean() float64 {
	sum := s.Batting + s.Bowling + s.Fielding + s.PowerHitting + s.Running + s.PressureHandling
	return float64(sum) / 6
}

// Get returns the rating of a rated discipline.
func (s Skills) Get(d Discipline) (int, bool) {
	switch d {
	case DisciplineBatting:
		return s.Batting, true
	case DisciplineBowling:
		return s.Bowling, true
	case DisciplineFielding:
		return s.Fielding, true
	}
	return 0, false
}

// Set writes the rating of a rated discipline, clamped to [1,10].
func (s *Skills) Set(d Discipline, v int) {
	v = ClampRating(v)
	switch d {
	case DisciplineBatting:
		s.Batting = v
	case DisciplineBowling:
		s.Bowling = v
	case DisciplineFielding:
		s.Fielding = v
	}
}

// ClampRating bounds v to [MinRating, MaxRating].
func ClampRating(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// Player is a roster member as supplied by roster management.
type Player struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PrimaryRole     Role            `json:"primary_role"`
	Skills          Skills          `json:"skills"`
	Experience      int             `json:"experience"`
	Fitness         int             `json:"fitness"`
	Injury          InjuryStatus    `json:"injury"`
	IsCaptain       bool            `json:"is_captain"`
	IsViceCaptain   bool            `json:"is_vice_captain"`
	IsWicketkeeper  bool            `json:"is_wicketkeeper"`
	Reliability     float64         `json:"reliability"`
	IsRookie        bool            `json:"is_rookie"`
	BattingHand     BattingHand     `json:"batting_hand,omitempty"`
	BowlingStyle    BowlingStyle    `json:"bowling_style,omitempty"`
	BattingPosition BattingPosition `json:"batting_position,omitempty"`

	ExcludeFromAutoRating bool   `json:"exclude_from_auto_rating"`
	ExclusionReason       string `json:"exclusion_reason,omitempty"`
}

// IsKeeper reports a recognized wicketkeeper: by role or by flag.
func (p Player) IsKeeper() bool {
	return p.PrimaryRole == RoleWicketkeeper || p.IsWicketkeeper
}

// IsLeader reports a captain or vice-captain.
func (p Player) IsLeader() bool {
	return p.IsCaptain || p.IsViceCaptain
}

// BowlingCapable reports whether the player counts toward the bowling quota.
func (p Player) BowlingCapable(threshold int) bool {
	return p.PrimaryRole == RoleBowler || p.PrimaryRole.IsAllRounder() || p.Skills.Bowling >= threshold
}

// BattingCategory returns the preferred batting position, deriving one from
// role and skills when none was recorded.
func (p Player) BattingCategory() BattingPosition {
	if p.BattingPosition != "" {
		return p.BattingPosition
	}
	switch p.PrimaryRole {
	case RoleBatsman, RoleWicketkeeper:
		if p.Skills.Batting >= 8 {
			return PositionTopOrder
		}
		if p.Skills.PowerHitting >= 8 {
			return PositionFinisher
		}
		return PositionMiddle
	case RoleBattingAllRounder, RoleAllRounder:
		if p.Skills.PowerHitting >= 8 {
			return PositionFinisher
		}
		return PositionMiddle
	case RoleBowlingAllRounder, RoleBowler:
		return PositionLower
	default:
		return PositionMiddle
	}
}

// Candidate is one selection-pool entry: the player, their season snapshot
// and an optional captain's-choice rank (1..3, 0 = none).
type Candidate struct {
	Player            Player         `json:"player"`
	Snapshot          SeasonSnapshot `json:"snapshot"`
	CaptainChoiceRank int            `json:"captain_choice_rank,omitempty"`
}
