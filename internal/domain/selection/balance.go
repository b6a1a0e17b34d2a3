package selection

import (
	"gonum.org/v1/gonum/stat"

	"github.com/okian/squadcraft/internal/domain/model"
)

// Summarize aggregates role counts and average skills for a set of players.
func (a *Allocator) Summarize(players []model.SelectedPlayer) model.BalanceSummary {
	sum := model.BalanceSummary{RoleCounts: make(map[model.Role]int)}
	if len(players) == 0 {
		return sum
	}

	bat := make([]float64, len(players))
	bowl := make([]float64, len(players))
	field := make([]float64, len(players))
	exp := make([]float64, len(players))
	for i, sp := range players {
		p := sp.Player
		sum.RoleCounts[p.PrimaryRole]++
		if p.IsKeeper() {
			sum.Keepers++
		}
		if a.bowlingCapable(p) {
			sum.BowlingCapable++
		}
		bat[i] = float64(p.Skills.Batting)
		bowl[i] = float64(p.Skills.Bowling)
		field[i] = float64(p.Skills.Fielding)
		exp[i] = float64(p.Experience)
		sum.TotalScore += sp.Score
	}
	sum.AvgBatting = stat.Mean(bat, nil)
	sum.AvgBowling = stat.Mean(bowl, nil)
	sum.AvgFielding = stat.Mean(field, nil)
	sum.AvgExperience = stat.Mean(exp, nil)
	return sum
}
