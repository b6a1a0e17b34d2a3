package selection

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/scoring"
	"github.com/okian/squadcraft/pkg/logger"
)

// Composite score weights.
const (
	overallWeight  = 3.0
	formWeight     = 1.5
	pressureWeight = 0.5
	sizePenalty    = 2.0
)

// FormScore maps a form label to the composite form term. Unknown form
// counts as average.
func FormScore(f model.Form) float64 {
	switch f {
	case model.FormExcellent:
		return 10
	case model.FormGood:
		return 8
	case model.FormPoor:
		return 3
	default:
		return 5
	}
}

// CompositeScore blends overall rating, form, experience and pressure
// handling for the weighted split.
func CompositeScore(c model.Candidate) float64 {
	p := c.Player
	return scoring.OverallRating(p)*overallWeight +
		FormScore(c.Snapshot.CurrentForm)*formWeight +
		float64(p.Experience) +
		float64(p.Skills.PressureHandling)*pressureWeight
}

var tierNames = []string{"wicketkeeper", "leader", "pace bowler", "spin bowler", "left-handed batter", "squad"}

func (a *Allocator) tierOf(p model.Player) int {
	switch {
	case p.IsKeeper():
		return 0
	case p.IsLeader():
		return 1
	case a.bowlingCapable(p) && p.BowlingStyle.IsPace():
		return 2
	case a.bowlingCapable(p) && p.BowlingStyle.IsSpin():
		return 3
	case p.BattingHand == model.BattingLeft:
		return 4
	default:
		return 5
	}
}

// WeightedBalancedSplit partitions the pool spreading keepers, leaders,
// bowling styles and left-handers across both teams while balancing the
// composite score. Each player goes to the side with the lower
// composite sum plus a size penalty.
func (a *Allocator) WeightedBalancedSplit(ctx context.Context, pool []model.Candidate) (model.Split, error) {
	if err := model.ValidatePool(pool); err != nil {
		return model.Split{}, err
	}

	tiers := make([][]member, len(tierNames))
	for _, c := range pool {
		t := a.tierOf(c.Player)
		tiers[t] = append(tiers[t], member{cand: c, score: CompositeScore(c)})
	}
	for _, tier := range tiers {
		sort.SliceStable(tier, func(i, j int) bool {
			return tier[i].score > tier[j].score
		})
	}

	ta, tb := &side{}, &side{}
	seeded := 0
	for t := 0; t < 2; t++ {
		if len(tiers[t]) == 0 {
			continue
		}
		m := tiers[t][0]
		m.rationale = fmt.Sprintf("seeded %s (composite %.1f)", tierNames[t], m.score)
		if seeded == 0 {
			ta.push(m)
		} else {
			tb.push(m)
		}
		tiers[t] = tiers[t][1:]
		seeded++
	}

	for t, tier := range tiers {
		for _, m := range tier {
			m.rationale = fmt.Sprintf("%s tier (composite %.1f)", tierNames[t], m.score)
			lighter(ta, tb).push(m)
		}
	}

	moves := rebalance(ta, tb, a.rebalanceLimit(len(pool)))
	split := a.buildSplit(model.SplitWeighted, ta, tb, pool)

	a.log.Debug(ctx, "weighted split",
		logger.Int("pool", len(pool)),
		logger.Int("seeded", seeded),
		logger.Int("rebalance_moves", moves),
		logger.Float64("score_gap", split.ScoreGap),
	)
	return split, nil
}

// lighter picks the side with the lower composite sum plus size penalty,
// then the smaller side, then A.
func lighter(ta, tb *side) *side {
	wa := ta.sum + float64(len(ta.members))*sizePenalty
	wb := tb.sum + float64(len(tb.members))*sizePenalty
	switch {
	case wb < wa:
		return tb
	case wa < wb:
		return ta
	case len(tb.members) < len(ta.members):
		return tb
	default:
		return ta
	}
}
