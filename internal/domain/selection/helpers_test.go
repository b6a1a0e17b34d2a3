package selection_test

import (
	"fmt"

	"github.com/okian/squadcraft/internal/domain/model"
)

func cand(id string, role model.Role, bat, bowl int) model.Candidate {
	return model.Candidate{
		Player: model.Player{
			ID:          id,
			Name:        id,
			PrimaryRole: role,
			Skills:      model.Skills{Batting: bat, Bowling: bowl, Fielding: 6, PowerHitting: 5, Running: 5, PressureHandling: 5},
			Experience:  5,
			Fitness:     7,
		},
		Snapshot: model.SeasonSnapshot{PlayerID: id, MatchesAvailable: 10, MatchesPlayed: 6},
	}
}

// flat builds a candidate whose four core ratings all equal r, so its
// overall rating is r whatever the role.
func flat(id string, role model.Role, r int) model.Candidate {
	c := cand(id, role, r, r)
	c.Player.Skills.Fielding = r
	c.Player.Experience = r
	return c
}

// standardPool is one keeper, ten batters and four bowlers. Batters outscore
// bowlers on selection score.
func standardPool() []model.Candidate {
	pool := []model.Candidate{cand("k1", model.RoleWicketkeeper, 7, 2)}
	for i := 1; i <= 10; i++ {
		pool = append(pool, cand(fmt.Sprintf("bat%d", i), model.RoleBatsman, 9, 2))
	}
	for i := 1; i <= 4; i++ {
		pool = append(pool, cand(fmt.Sprintf("bowl%d", i), model.RoleBowler, 2, 7))
	}
	return pool
}

func ids(players []model.SelectedPlayer) []string {
	out := make([]string, len(players))
	for i, sp := range players {
		out[i] = sp.Player.ID
	}
	return out
}

func countKeepers(players []model.SelectedPlayer) int {
	n := 0
	for _, sp := range players {
		if sp.Player.IsKeeper() {
			n++
		}
	}
	return n
}

func hasWarning(warnings []string, prefix string) bool {
	for _, w := range warnings {
		if len(w) >= len(prefix) && w[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
