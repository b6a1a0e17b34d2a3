// Package rostergen builds synthetic squads with season snapshots and match
// records, writes them as roster YAML and can replay fresh matches against a
// running service.
package rostergen

import (
	"time"

	"github.com/okian/squadcraft/pkg/logger"
)

// Config holds generator and submitter settings.
type Config struct {
	Players int    // roster size
	Matches int    // matches already played this season
	Season  string // season label
	Seed    uint64 // same seed, same roster
	Start   time.Time

	Output string // YAML destination; empty skips writing

	BaseURL string        // service to replay fresh matches against; empty skips submitting
	Fresh   int           // matches to generate after the seeded ones
	Workers int           // concurrent submissions
	Timeout time.Duration // per-request timeout

	Logger logger.Logger
}

// Stats summarizes a submission run.
type Stats struct {
	Submitted     int
	Failed        int
	RatingChanges int
	StartTime     time.Time
	Duration      time.Duration
}
