package selection

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/okian/squadcraft/internal/domain/model"
)

// Team names used in splits.
const (
	TeamAName = "Team A"
	TeamBName = "Team B"
)

// member is one split assignment. score is whatever the split balances on.
type member struct {
	cand      model.Candidate
	score     float64
	rationale string
}

type side struct {
	members []member
	sum     float64
}

func (s *side) push(m member) {
	s.members = append(s.members, m)
	s.sum += m.score
}

func (s *side) pop() member {
	last := s.members[len(s.members)-1]
	s.members = s.members[:len(s.members)-1]
	s.sum -= last.score
	return last
}

// rebalance moves the most recently added player from the larger side to the
// smaller one until sizes differ by at most one or the iteration cap is hit.
func rebalance(a, b *side, limit int) int {
	moves := 0
	for ; moves < limit; moves++ {
		switch {
		case len(a.members)-len(b.members) > 1:
			b.push(a.pop())
		case len(b.members)-len(a.members) > 1:
			a.push(b.pop())
		default:
			return moves
		}
	}
	return moves
}

// rebalanceLimit never drops below the pool size, which is enough moves to
// even out any assignment.
func (a *Allocator) rebalanceLimit(poolSize int) int {
	return max(a.rebalanceCap, poolSize)
}

func (a *Allocator) buildSplit(method string, ta, tb *side, pool []model.Candidate) model.Split {
	split := model.Split{
		TeamA:    a.team(TeamAName, ta),
		TeamB:    a.team(TeamBName, tb),
		Method:   method,
		ScoreGap: math.Abs(ta.sum - tb.sum),
	}
	split.Warnings = splitWarnings(pool, split)
	return split
}

func (a *Allocator) team(name string, s *side) model.TeamComposition {
	players := make([]model.SelectedPlayer, len(s.members))
	for i, m := range s.members {
		players[i] = model.SelectedPlayer{
			Player:      m.cand.Player,
			Position:    i + 1,
			RoleInMatch: RoleInMatch(m.cand.Player),
			Rationale:   m.rationale,
			Score:       m.score,
		}
	}
	return model.TeamComposition{
		ID:       uuid.NewString(),
		Name:     name,
		Players:  players,
		Balance:  a.Summarize(players),
		Warnings: []string{},
		Source:   model.SourceDeterministic,
	}
}

func splitWarnings(pool []model.Candidate, split model.Split) []string {
	warnings := []string{}
	if len(pool) < 2 {
		warnings = append(warnings, fmt.Sprintf("pool of %d cannot form two teams", len(pool)))
	}
	switch ka, kb := split.TeamA.Balance.Keepers, split.TeamB.Balance.Keepers; {
	case ka == 0 && kb == 0:
		warnings = append(warnings, "no wicketkeeper in pool")
	case ka == 0:
		warnings = append(warnings, TeamAName+" has no wicketkeeper")
	case kb == 0:
		warnings = append(warnings, TeamBName+" has no wicketkeeper")
	}
	return warnings
}
