package model

import "time"

// Venue describes the ground.
type Venue struct {
	Name          string    `json:"name,omitempty"`
	Pitch         PitchType `json:"pitch,omitempty"`
	BoundarySize  string    `json:"boundary_size,omitempty"`
	OutfieldSpeed string    `json:"outfield_speed,omitempty"`
}

// MatchContext is the fixture a squad is picked for.
type MatchContext struct {
	OpponentOverall float64        `json:"opponent_overall"`
	OpponentBatting float64        `json:"opponent_batting"`
	OpponentBowling float64        `json:"opponent_bowling"`
	Venue           Venue          `json:"venue"`
	Importance      ImportanceTier `json:"importance,omitempty"`
	Weather         string         `json:"weather,omitempty"`
}

// PerformanceRecord is one player's raw counters for one match.
type PerformanceRecord struct {
	PlayerID  string    `json:"player_id"`
	MatchID   string    `json:"match_id"`
	MatchDate time.Time `json:"match_date"`

	Batted     bool `json:"batted"`
	Runs       int  `json:"runs"`
	BallsFaced int  `json:"balls_faced"`
	Fours      int  `json:"fours"`
	Sixes      int  `json:"sixes"`
	NotOut     bool `json:"not_out"`

	Bowled       bool    `json:"bowled"`
	Overs        float64 `json:"overs"` // cricket notation: 3.4 is three overs and four balls
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Maidens      int     `json:"maidens"`
	Wides        int     `json:"wides"`
	NoBalls      int     `json:"no_balls"`

	Catches        int `json:"catches"`
	RunOuts        int `json:"run_outs"`
	Stumpings      int `json:"stumpings"`
	DroppedCatches int `json:"dropped_catches"`

	PlayerOfMatch bool           `json:"player_of_match"`
	Importance    ImportanceTier `json:"importance,omitempty"`
}

// Boundaries is fours plus sixes.
func (r PerformanceRecord) Boundaries() int { return r.Fours + r.Sixes }

// IllegalDeliveries is wides plus no-balls.
func (r PerformanceRecord) IllegalDeliveries() int { return r.Wides + r.NoBalls }

// LegalBalls converts cricket-notation overs into balls bowled.
func (r PerformanceRecord) LegalBalls() int {
	if r.Overs <= 0 {
		return 0
	}
	whole := int(r.Overs)
	part := int((r.Overs-float64(whole))*10 + 0.5)
	if part > 5 {
		part = 5
	}
	return whole*6 + part
}
