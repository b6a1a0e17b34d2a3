package selection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/pkg/logger"
)

// Request is a squad selection request.
type Request struct {
	Pool   []model.Candidate   `json:"pool"`
	Target int                 `json:"target,omitempty"`
	Mode   model.Mode          `json:"mode,omitempty"`
	Match  *model.MatchContext `json:"match,omitempty"`
}

// RosterRequest selects from stored players instead of a supplied pool.
type RosterRequest struct {
	// PlayerIDs limits the pool; empty means every stored player.
	PlayerIDs []string `json:"player_ids,omitempty"`
	Season    string   `json:"season,omitempty"`
	// CaptainChoices are ranked 1..3 in order.
	CaptainChoices []string            `json:"captain_choices,omitempty"`
	Target         int                 `json:"target,omitempty"`
	Mode           model.Mode          `json:"mode,omitempty"`
	Match          *model.MatchContext `json:"match,omitempty"`
}

// Composer produces a team composition for a request.
type Composer interface {
	Compose(ctx context.Context, req Request) (model.TeamComposition, error)
}

// DeterministicComposer composes with the allocator alone.
type DeterministicComposer struct {
	alloc *Allocator
}

// NewDeterministicComposer wraps an allocator.
func NewDeterministicComposer(a *Allocator) *DeterministicComposer {
	return &DeterministicComposer{alloc: a}
}

func (d *DeterministicComposer) Compose(ctx context.Context, req Request) (model.TeamComposition, error) {
	return d.alloc.SelectSquad(ctx, req.Pool, req.Target, req.Mode, req.Match)
}

// SuggestionSource proposes a squad as an ordered list of player IDs.
type SuggestionSource interface {
	Suggest(ctx context.Context, req Request) ([]string, error)
}

// SuggestionComposer presents an external suggestion when it passes
// ValidateComposition, and the deterministic squad otherwise.
type SuggestionComposer struct {
	alloc  *Allocator
	source SuggestionSource
	log    logger.Logger
}

// NewSuggestionComposer creates a composer over an external source.
func NewSuggestionComposer(a *Allocator, src SuggestionSource, l logger.Logger) *SuggestionComposer {
	if l == nil {
		l = logger.Discard()
	}
	return &SuggestionComposer{alloc: a, source: src, log: l}
}

func (s *SuggestionComposer) Compose(ctx context.Context, req Request) (model.TeamComposition, error) {
	base, err := s.alloc.SelectSquad(ctx, req.Pool, req.Target, req.Mode, req.Match)
	if err != nil {
		return model.TeamComposition{}, err
	}

	ids, err := s.source.Suggest(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "suggestion unavailable", logger.Error(err))
		base.Warnings = append(base.Warnings, "suggestion unavailable; deterministic squad used")
		return base, nil
	}

	comp := s.fromIDs(ids, req, base.Mode)
	if err := s.alloc.ValidateComposition(comp, req.Pool, req.Target); err != nil {
		s.log.Warn(ctx, "suggestion rejected", logger.Error(err))
		base.Warnings = append(base.Warnings, fmt.Sprintf("suggestion rejected: %v; deterministic squad used", err))
		return base, nil
	}
	return comp, nil
}

// fromIDs builds a composition from suggested IDs. Unknown IDs are kept as
// bare players so validation can report them.
func (s *SuggestionComposer) fromIDs(ids []string, req Request, mode model.Mode) model.TeamComposition {
	byID := make(map[string]model.Candidate, len(req.Pool))
	for _, c := range req.Pool {
		byID[c.Player.ID] = c
	}

	entries := make([]ranked, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			c = model.Candidate{Player: model.Player{ID: id}}
		}
		sel := s.alloc.scorer.SelectionScore(c, mode, req.Match)
		entries = append(entries, ranked{cand: c, sel: sel, keeper: ok && c.Player.IsKeeper()})
	}

	players := s.alloc.annotate(battingOrder(entries))
	for i := range players {
		players[i].Rationale = "suggested; " + players[i].Rationale
	}
	return model.TeamComposition{
		ID:       uuid.NewString(),
		Mode:     mode,
		Players:  players,
		Balance:  s.alloc.Summarize(players),
		Warnings: []string{},
		Source:   model.SourceSuggestion,
	}
}
