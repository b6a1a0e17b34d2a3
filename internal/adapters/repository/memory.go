package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/pkg/logger"
)

// MemoryStore is an in-process Store. Reads return copies.
type MemoryStore struct {
	mu           sync.RWMutex
	players      map[string]model.Player
	snapshots    map[string]map[string]model.SeasonSnapshot
	latest       map[string]string
	performances map[string][]model.PerformanceRecord
	log          logger.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		players:      make(map[string]model.Player),
		snapshots:    make(map[string]map[string]model.SeasonSnapshot),
		latest:       make(map[string]string),
		performances: make(map[string][]model.PerformanceRecord),
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Player(_ context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return model.Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *MemoryStore) Players(_ context.Context) ([]model.Player, error) {
	s.mu.RLock()
	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Snapshot(_ context.Context, playerID, season string) (model.SeasonSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if season == "" {
		season = s.latest[playerID]
	}
	snap, ok := s.snapshots[playerID][season]
	if !ok {
		return model.SeasonSnapshot{}, fmt.Errorf("snapshot %s/%s: %w", playerID, season, ErrNotFound)
	}
	return snap, nil
}

func (s *MemoryStore) Performances(_ context.Context, playerID string, limit int) ([]model.PerformanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.performances[playerID]
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]model.PerformanceRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// UpsertPlayer validates and stores a player.
func (s *MemoryStore) UpsertPlayer(ctx context.Context, p model.Player) error {
	if err := model.Validate(p); err != nil {
		return err
	}
	s.mu.Lock()
	s.players[p.ID] = p
	s.mu.Unlock()
	s.log.Debug(ctx, "player stored", logger.String("player_id", p.ID))
	return nil
}

// UpsertSnapshot stores a season snapshot and marks its season as the latest
// for that player.
func (s *MemoryStore) UpsertSnapshot(_ context.Context, snap model.SeasonSnapshot) error {
	if snap.PlayerID == "" {
		return &model.InputError{Field: "player_id", Reason: "empty"}
	}
	if snap.MatchesAvailable < 0 || snap.MatchesPlayed < 0 {
		return &model.InputError{PlayerID: snap.PlayerID, Field: "matches", Reason: "negative count"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bySeason, ok := s.snapshots[snap.PlayerID]
	if !ok {
		bySeason = make(map[string]model.SeasonSnapshot)
		s.snapshots[snap.PlayerID] = bySeason
	}
	bySeason[snap.Season] = snap
	s.latest[snap.PlayerID] = snap.Season
	return nil
}

// AddPerformance stores a record, replacing any earlier record for the same
// match. Records stay ordered newest first.
func (s *MemoryStore) AddPerformance(_ context.Context, r model.PerformanceRecord) error {
	if r.PlayerID == "" || r.MatchID == "" {
		return &model.InputError{PlayerID: r.PlayerID, Field: "match_id", Reason: "player and match ids are required"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.performances[r.PlayerID]
	replaced := false
	for i := range recs {
		if recs[i].MatchID == r.MatchID {
			recs[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, r)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchDate.After(recs[j].MatchDate)
	})
	s.performances[r.PlayerID] = recs
	return nil
}

func (s *MemoryStore) ApplyRatingChanges(ctx context.Context, playerID string, changes []model.RatingChange) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[playerID]
	if !ok {
		return model.Player{}, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}

	next := p
	for _, c := range changes {
		if c.PlayerID != playerID {
			return p, fmt.Errorf("change %s belongs to %s, not %s: %w", c.ID, c.PlayerID, playerID, model.ErrInvalidInput)
		}
		current, ok := next.Skills.Get(c.Discipline)
		if !ok {
			return p, &model.InputError{PlayerID: playerID, Field: "discipline", Reason: fmt.Sprintf("unknown discipline %q", c.Discipline)}
		}
		if current != c.Previous {
			return p, fmt.Errorf("%s %s is %d, change expects %d: %w", playerID, c.Discipline, current, c.Previous, ErrStaleRating)
		}
		next.Skills.Set(c.Discipline, c.New)
	}
	s.players[playerID] = next
	s.log.Debug(ctx, "rating changes applied", logger.String("player_id", playerID), logger.Int("changes", len(changes)))
	return next, nil
}
