// Package repository holds roster data the engine reads per invocation and
// the append-only log of applied rating changes.
package repository

import (
	"context"

	"github.com/okian/squadcraft/internal/domain/model"
)

// Roster is the read side the engine depends on.
type Roster interface {
	// Player returns ErrNotFound for an unknown id.
	Player(ctx context.Context, id string) (model.Player, error)
	// Players returns every player ordered by id.
	Players(ctx context.Context) ([]model.Player, error)
	// Snapshot returns the player's snapshot for season; an empty season means
	// the most recently stored one. Returns ErrNotFound when none exists.
	Snapshot(ctx context.Context, playerID, season string) (model.SeasonSnapshot, error)
	// Performances returns up to limit records, newest first. limit <= 0 means all.
	Performances(ctx context.Context, playerID string, limit int) ([]model.PerformanceRecord, error)
}

// Writer is the mutation side owned by roster and match management.
type Writer interface {
	UpsertPlayer(ctx context.Context, p model.Player) error
	UpsertSnapshot(ctx context.Context, s model.SeasonSnapshot) error
	AddPerformance(ctx context.Context, r model.PerformanceRecord) error
	// ApplyRatingChanges applies all changes for one player or none. A change
	// whose Previous no longer matches the stored rating fails with
	// ErrStaleRating.
	ApplyRatingChanges(ctx context.Context, playerID string, changes []model.RatingChange) (model.Player, error)
}

// Store combines both sides.
type Store interface {
	Roster
	Writer
	Count(ctx context.Context) int
}
