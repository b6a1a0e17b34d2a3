package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/squadcraft/internal/domain/model"
)

// needsGamesBelow is the opportunity ratio under which the rationale notes
// that a player needs game time.
const needsGamesBelow = 0.4

// battingOrder sorts by batting category (opener first), then by batting
// skill. Keepers and all-rounders use the same categories.
func battingOrder(entries []ranked) []ranked {
	out := make([]ranked, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].cand.Player, out[j].cand.Player
		ri, rj := pi.BattingCategory().Rank(), pj.BattingCategory().Rank()
		if ri != rj {
			return ri < rj
		}
		return pi.Skills.Batting > pj.Skills.Batting
	})
	return out
}

func (a *Allocator) annotate(entries []ranked) []model.SelectedPlayer {
	out := make([]model.SelectedPlayer, len(entries))
	for i, e := range entries {
		out[i] = model.SelectedPlayer{
			Player:      e.cand.Player,
			Position:    i + 1,
			RoleInMatch: RoleInMatch(e.cand.Player),
			Rationale:   rationale(e),
			Score:       e.sel.Score,
		}
	}
	return out
}

// RoleInMatch describes what a player is picked to do.
func RoleInMatch(p model.Player) string {
	switch {
	case p.IsKeeper():
		return "wicketkeeper-batter"
	case p.PrimaryRole == model.RoleBowler:
		if p.Skills.Bowling >= keySkill {
			return "strike bowler"
		}
		return "support bowler"
	case p.PrimaryRole == model.RoleBattingAllRounder:
		return "batting all-rounder"
	case p.PrimaryRole == model.RoleBowlingAllRounder:
		return "bowling all-rounder"
	case p.PrimaryRole.IsAllRounder():
		return "all-rounder"
	}
	switch p.BattingCategory() {
	case model.PositionOpener:
		return "opening batter"
	case model.PositionTopOrder:
		return "top-order batter"
	case model.PositionFinisher:
		return "finisher"
	case model.PositionLower:
		return "lower-order batter"
	default:
		return "middle-order batter"
	}
}

func rationale(e ranked) string {
	p := e.cand.Player
	var reasons []string
	if e.cand.Snapshot.CurrentForm == model.FormExcellent {
		reasons = append(reasons, "in excellent form")
	}
	if p.Skills.Bowling >= keySkill {
		reasons = append(reasons, "key bowler (skill ≥ 8)")
	}
	if p.Skills.Batting >= keySkill {
		reasons = append(reasons, "key batter (skill ≥ 8)")
	}
	if e.cand.Snapshot.MatchesAvailable > 0 && e.sel.Ratio < needsGamesBelow {
		reasons = append(reasons, "needs game time")
	}
	if e.keeper {
		reasons = append(reasons, "designated wicketkeeper")
	}
	if r := e.cand.CaptainChoiceRank; r > 0 {
		reasons = append(reasons, fmt.Sprintf("captain's choice #%d", r))
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("selected on merit (score %.1f)", e.sel.Score)
	}
	return strings.Join(reasons, "; ")
}
