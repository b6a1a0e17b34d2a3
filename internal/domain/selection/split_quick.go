package selection

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/scoring"
	"github.com/okian/squadcraft/pkg/logger"
)

// quickBucket is a role bucket, in scarcity order.
type quickBucket struct {
	name    string
	members []member
}

// QuickSplit partitions the pool into two teams of near-equal size and
// overall rating. Each role bucket is dealt in a snake (A B B A ...) by
// overall rating, starting on the smaller team.
func (a *Allocator) QuickSplit(ctx context.Context, pool []model.Candidate) (model.Split, error) {
	if err := model.ValidatePool(pool); err != nil {
		return model.Split{}, err
	}

	buckets := []*quickBucket{
		{name: "wicketkeeper"},
		{name: "bowler"},
		{name: "all-rounder"},
		{name: "batsman"},
		{name: "other"},
	}
	for _, c := range pool {
		m := member{cand: c, score: scoring.OverallRating(c.Player)}
		p := c.Player
		switch {
		case p.IsKeeper():
			buckets[0].members = append(buckets[0].members, m)
		case p.PrimaryRole == model.RoleBowler:
			buckets[1].members = append(buckets[1].members, m)
		case p.PrimaryRole.IsAllRounder():
			buckets[2].members = append(buckets[2].members, m)
		case p.PrimaryRole == model.RoleBatsman:
			buckets[3].members = append(buckets[3].members, m)
		default:
			buckets[4].members = append(buckets[4].members, m)
		}
	}

	ta, tb := &side{}, &side{}
	for _, b := range buckets {
		sort.SliceStable(b.members, func(i, j int) bool {
			return b.members[i].score > b.members[j].score
		})
		first, second := opener(ta, tb)
		for i, m := range b.members {
			m.rationale = fmt.Sprintf("%s pick %d (overall %.1f)", b.name, i+1, m.score)
			round := i / 2
			if (round%2 == 0) == (i%2 == 0) {
				first.push(m)
			} else {
				second.push(m)
			}
		}
	}

	moves := rebalance(ta, tb, a.rebalanceLimit(len(pool)))
	split := a.buildSplit(model.SplitQuick, ta, tb, pool)

	a.log.Debug(ctx, "quick split",
		logger.Int("pool", len(pool)),
		logger.Int("rebalance_moves", moves),
		logger.Float64("score_gap", split.ScoreGap),
	)
	return split, nil
}

// opener returns the side a bucket starts on: the smaller one, then the
// weaker one, then A.
func opener(ta, tb *side) (*side, *side) {
	switch {
	case len(tb.members) < len(ta.members):
		return tb, ta
	case len(ta.members) < len(tb.members):
		return ta, tb
	case tb.sum < ta.sum:
		return tb, ta
	default:
		return ta, tb
	}
}
