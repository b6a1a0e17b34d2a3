package model

// Composition sources.
const (
	SourceDeterministic = "deterministic"
	SourceSuggestion    = "suggestion"
)

// SelectedPlayer is one member of a composition in batting order.
type SelectedPlayer struct {
	Player      Player  `json:"player"`
	Position    int     `json:"position"`
	RoleInMatch string  `json:"role_in_match"`
	Rationale   string  `json:"rationale"`
	Score       float64 `json:"score"`
}

// BalanceSummary aggregates a composition for quick comparison.
type BalanceSummary struct {
	RoleCounts     map[Role]int `json:"role_counts"`
	Keepers        int          `json:"keepers"`
	BowlingCapable int          `json:"bowling_capable"`
	AvgBatting     float64      `json:"avg_batting"`
	AvgBowling     float64      `json:"avg_bowling"`
	AvgFielding    float64      `json:"avg_fielding"`
	AvgExperience  float64      `json:"avg_experience"`
	TotalScore     float64      `json:"total_score"`
}

// TeamComposition is the result of a selection or one side of a split.
type TeamComposition struct {
	ID       string           `json:"id"`
	Name     string           `json:"name,omitempty"`
	Mode     Mode             `json:"mode,omitempty"`
	Players  []SelectedPlayer `json:"players"`
	Balance  BalanceSummary   `json:"balance"`
	Warnings []string         `json:"warnings"`
	Source   string           `json:"source"`
}

// PlayerIDs returns member ids in order.
func (c TeamComposition) PlayerIDs() []string {
	ids := make([]string, len(c.Players))
	for i, sp := range c.Players {
		ids[i] = sp.Player.ID
	}
	return ids
}

// Size is the number of selected players.
func (c TeamComposition) Size() int { return len(c.Players) }

// Split methods.
const (
	SplitQuick    = "quick"
	SplitWeighted = "weighted"
)

// Split is a two-way partition of a pool.
type Split struct {
	TeamA    TeamComposition `json:"team_a"`
	TeamB    TeamComposition `json:"team_b"`
	Method   string          `json:"method"`
	ScoreGap float64         `json:"score_gap"`
	Warnings []string        `json:"warnings"`
}
