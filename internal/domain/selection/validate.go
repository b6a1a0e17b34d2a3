package selection

import (
	"errors"
	"fmt"

	"github.com/okian/squadcraft/internal/domain/model"
)

// ValidateComposition checks a composition produced outside the allocator
// against the squad invariants: every member comes from the pool exactly
// once, the size matches what the pool allows, there is exactly one keeper
// when the pool has one, and the bowling quota is met as far as the pool allows.
func (a *Allocator) ValidateComposition(comp model.TeamComposition, pool []model.Candidate, target int) error {
	if target <= 0 {
		target = a.squadSize
	}
	byID := make(map[string]model.Candidate, len(pool))
	poolKeepers, poolBowlers := 0, 0
	for _, c := range pool {
		byID[c.Player.ID] = c
		if c.Player.IsKeeper() {
			poolKeepers++
		}
		if a.bowlingCapable(c.Player) {
			poolBowlers++
		}
	}

	var errs []error
	seen := make(map[string]bool, comp.Size())
	keepers, bowlers := 0, 0
	for _, sp := range comp.Players {
		id := sp.Player.ID
		c, ok := byID[id]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: player %s is not in the pool", ErrInvalidSuggestion, id))
			continue
		case seen[id]:
			errs = append(errs, fmt.Errorf("%w: player %s selected twice", ErrInvalidSuggestion, id))
			continue
		}
		seen[id] = true
		if c.Player.IsKeeper() {
			keepers++
		}
		if a.bowlingCapable(c.Player) {
			bowlers++
		}
	}

	if want := min(target, len(pool)); comp.Size() != want {
		errs = append(errs, fmt.Errorf("%w: %d players selected, want %d", ErrInvalidSuggestion, comp.Size(), want))
	}
	if poolKeepers > 0 && keepers != 1 {
		errs = append(errs, fmt.Errorf("%w: %d wicketkeepers selected, want exactly 1", ErrInvalidSuggestion, keepers))
	}
	if want := min(a.quota(target), poolBowlers); bowlers < want {
		errs = append(errs, fmt.Errorf("%w: %d bowling-capable players selected, want at least %d", ErrInvalidSuggestion, bowlers, want))
	}
	return errors.Join(errs...)
}
