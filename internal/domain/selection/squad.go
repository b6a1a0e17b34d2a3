package selection

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/scoring"
	"github.com/okian/squadcraft/pkg/logger"
)

// ranked is a candidate with its selection score.
type ranked struct {
	cand   model.Candidate
	sel    scoring.Selection
	keeper bool // the reserved wicketkeeper
}

// SelectSquad picks a match XI (or any target size; zero means the default).
// Shortfalls such as a missing keeper or an unmet bowling quota are reported
// as warnings. Only malformed input is an error.
func (a *Allocator) SelectSquad(ctx context.Context, pool []model.Candidate, target int, mode model.Mode, mc *model.MatchContext) (model.TeamComposition, error) {
	if err := model.ValidatePool(pool); err != nil {
		return model.TeamComposition{}, err
	}
	if target <= 0 {
		target = a.squadSize
	}
	if mode == "" {
		mode = model.ModeBalanced
	}

	warnings := []string{}
	if len(pool) < target {
		warnings = append(warnings, fmt.Sprintf("pool has %d players, fewer than the %d required", len(pool), target))
	}

	entries, excluded := a.rank(pool, mode, mc)
	if len(excluded) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d injured player(s) excluded: %s", len(excluded), strings.Join(excluded, ", ")))
	}

	chosen, rest := reserveKeeper(entries)
	if len(chosen) == 0 {
		warnings = append(warnings, "no recognized wicketkeeper available")
	}
	chosen = a.fill(chosen, rest, target)

	if len(chosen) < target {
		warnings = append(warnings, fmt.Sprintf("squad short: %d of %d places filled", len(chosen), target))
	}
	quota := a.quota(target)
	if have := a.countBowlers(chosen); have < quota {
		warnings = append(warnings, fmt.Sprintf("bowling quota unmet: %d of %d bowling-capable players", have, quota))
	}
	if id, ok := firstChoiceMissing(pool, chosen); ok {
		warnings = append(warnings, fmt.Sprintf("captain's first choice %s not selected", id))
	}

	comp := model.TeamComposition{
		ID:       uuid.NewString(),
		Mode:     mode,
		Players:  a.annotate(battingOrder(chosen)),
		Warnings: warnings,
		Source:   model.SourceDeterministic,
	}
	comp.Balance = a.Summarize(comp.Players)

	a.log.Debug(ctx, "squad selected",
		logger.String("mode", string(mode)),
		logger.Int("pool", len(pool)),
		logger.Int("selected", comp.Size()),
		logger.Int("warnings", len(warnings)),
	)
	return comp, nil
}

// rank scores the pool and sorts eligible entries by score, highest first.
// Ties keep input order.
func (a *Allocator) rank(pool []model.Candidate, mode model.Mode, mc *model.MatchContext) ([]ranked, []string) {
	entries := make([]ranked, 0, len(pool))
	var excluded []string
	for _, c := range pool {
		sel := a.scorer.SelectionScore(c, mode, mc)
		if !sel.Eligible {
			excluded = append(excluded, c.Player.ID)
			continue
		}
		entries = append(entries, ranked{cand: c, sel: sel})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sel.Score > entries[j].sel.Score
	})
	return entries, excluded
}

// reserveKeeper takes the highest-ranked keeper and drops every other keeper,
// so a squad never carries two.
func reserveKeeper(entries []ranked) ([]ranked, []ranked) {
	var chosen []ranked
	rest := make([]ranked, 0, len(entries))
	for _, e := range entries {
		if !e.cand.Player.IsKeeper() {
			rest = append(rest, e)
			continue
		}
		if len(chosen) == 0 {
			e.keeper = true
			chosen = append(chosen, e)
		}
	}
	return chosen, rest
}

// fill adds entries in rank order until target is reached. A player who
// cannot bowl is held back while taking them would leave too few places for
// the bowling-capable players still available.
func (a *Allocator) fill(chosen, rest []ranked, target int) []ranked {
	quota := a.quota(target)
	have := a.countBowlers(chosen)

	capableAfter := make([]int, len(rest)+1)
	for i := len(rest) - 1; i >= 0; i-- {
		capableAfter[i] = capableAfter[i+1]
		if a.bowlingCapable(rest[i].cand.Player) {
			capableAfter[i]++
		}
	}

	var deferred []ranked
	for i, e := range rest {
		if len(chosen) >= target {
			break
		}
		if a.bowlingCapable(e.cand.Player) {
			chosen = append(chosen, e)
			have++
			continue
		}
		need := min(quota-have, capableAfter[i+1])
		if need > 0 && target-len(chosen)-1 < need {
			deferred = append(deferred, e)
			continue
		}
		chosen = append(chosen, e)
	}
	for _, e := range deferred {
		if len(chosen) >= target {
			break
		}
		chosen = append(chosen, e)
	}
	return chosen
}

func (a *Allocator) countBowlers(entries []ranked) int {
	n := 0
	for _, e := range entries {
		if a.bowlingCapable(e.cand.Player) {
			n++
		}
	}
	return n
}

func firstChoiceMissing(pool []model.Candidate, chosen []ranked) (string, bool) {
	for _, c := range pool {
		if c.CaptainChoiceRank != 1 {
			continue
		}
		for _, e := range chosen {
			if e.cand.Player.ID == c.Player.ID {
				return "", false
			}
		}
		return c.Player.ID, true
	}
	return "", false
}
