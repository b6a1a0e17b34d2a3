package model

import "time"

// RatingChange records one applied skill-rating update. It is append-only:
// once emitted it is never mutated.
type RatingChange struct {
	ID           string     `json:"id"`
	PlayerID     string     `json:"player_id"`
	Discipline   Discipline `json:"discipline"`
	Previous     int        `json:"previous"`
	New          int        `json:"new"`
	Delta        int        `json:"delta"`
	AverageScore float64    `json:"average_score"`
	SampleSize   int        `json:"sample_size"`
	MatchIDs     []string   `json:"match_ids,omitempty"`
	Reason       string     `json:"reason"`
	AppliedAt    time.Time  `json:"applied_at"`
}

// RatingJob asks the worker pool to recompute one player's ratings.
type RatingJob struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Season    string    `json:"season,omitempty"`
	Lookback  int       `json:"lookback,omitempty"`
	Submitted time.Time `json:"submitted"`
}
