package model

// Totals are cumulative season counters.
type Totals struct {
	Runs      int `json:"runs"`
	Wickets   int `json:"wickets"`
	Catches   int `json:"catches"`
	RunOuts   int `json:"run_outs"`
	Stumpings int `json:"stumpings"`
}

// SeasonSnapshot is a player's season-to-date record. The engine reads it only.
type SeasonSnapshot struct {
	PlayerID         string `json:"player_id"`
	Season           string `json:"season"`
	MatchesAvailable int    `json:"matches_available"`
	MatchesPlayed    int    `json:"matches_played"`
	CurrentForm      Form   `json:"current_form,omitempty"`
	Totals           Totals `json:"totals"`
}
