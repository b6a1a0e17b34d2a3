package selection_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/selection"
)

var roles = []model.Role{
	model.RoleBatsman, model.RoleBowler, model.RoleAllRounder, model.RoleWicketkeeper,
	model.RoleBattingAllRounder, model.RoleBowlingAllRounder, model.RoleOther,
}

func randomPool(rng *rand.Rand, n int) []model.Candidate {
	styles := []model.BowlingStyle{"", model.BowlingFast, model.BowlingOffSpin, model.BowlingMedium, model.BowlingLegSpin}
	forms := []model.Form{model.FormUnknown, model.FormExcellent, model.FormGood, model.FormAverage, model.FormPoor}
	pool := make([]model.Candidate, n)
	for i := range pool {
		c := cand(fmt.Sprintf("p%02d", i), roles[rng.Intn(len(roles))], 1+rng.Intn(10), 1+rng.Intn(10))
		c.Player.Experience = 1 + rng.Intn(10)
		c.Player.Skills.PressureHandling = 1 + rng.Intn(10)
		c.Player.BowlingStyle = styles[rng.Intn(len(styles))]
		c.Player.IsCaptain = rng.Intn(10) == 0
		c.Player.IsWicketkeeper = rng.Intn(8) == 0
		if rng.Intn(3) == 0 {
			c.Player.BattingHand = model.BattingLeft
		}
		c.Snapshot.CurrentForm = forms[rng.Intn(len(forms))]
		pool[i] = c
	}
	return pool
}

func assertPartition(t *testing.T, pool []model.Candidate, split model.Split) {
	t.Helper()
	a, b := split.TeamA.Size(), split.TeamB.Size()
	assert.LessOrEqual(t, a-b, 1)
	assert.LessOrEqual(t, b-a, 1)

	seen := make(map[string]int, len(pool))
	for _, id := range split.TeamA.PlayerIDs() {
		seen[id]++
	}
	for _, id := range split.TeamB.PlayerIDs() {
		seen[id]++
	}
	require.Len(t, seen, len(pool))
	for _, c := range pool {
		assert.Equal(t, 1, seen[c.Player.ID], "player %s", c.Player.ID)
	}
}

func TestSplitsPartitionEveryPool(t *testing.T) {
	ctx := context.Background()
	alloc := selection.New()
	splits := map[string]func(context.Context, []model.Candidate) (model.Split, error){
		model.SplitQuick:    alloc.QuickSplit,
		model.SplitWeighted: alloc.WeightedBalancedSplit,
	}

	for name, split := range splits {
		for n := 2; n <= 30; n++ {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				pool := randomPool(rand.New(rand.NewSource(int64(n))), n)
				got, err := split(ctx, pool)
				require.NoError(t, err)
				assert.Equal(t, name, got.Method)
				assertPartition(t, pool, got)
			})
		}
	}
}

func TestQuickSplitBucketsAlternate(t *testing.T) {
	pool := []model.Candidate{
		flat("bat6", model.RoleBatsman, 6),
		flat("keeper", model.RoleWicketkeeper, 8),
		flat("bat5", model.RoleBatsman, 5),
		flat("bowler", model.RoleBowler, 7),
	}
	split, err := selection.New().QuickSplit(context.Background(), pool)
	require.NoError(t, err)

	assert.Equal(t, 2, split.TeamA.Size())
	assert.Equal(t, 2, split.TeamB.Size())
	assert.ElementsMatch(t, []string{"keeper", "bat5"}, split.TeamA.PlayerIDs())
	assert.ElementsMatch(t, []string{"bowler", "bat6"}, split.TeamB.PlayerIDs())
	assert.InDelta(t, 0, split.ScoreGap, 1e-9)
	assert.Equal(t, []string{"Team B has no wicketkeeper"}, split.Warnings)
}

func TestQuickSplitSnakesWithinBucket(t *testing.T) {
	var pool []model.Candidate
	for r := 8; r >= 5; r-- {
		pool = append(pool, flat(fmt.Sprintf("bat%d", r), model.RoleBatsman, r))
	}
	split, err := selection.New().QuickSplit(context.Background(), pool)
	require.NoError(t, err)

	// A B B A by rating.
	assert.Equal(t, []string{"bat8", "bat5"}, split.TeamA.PlayerIDs())
	assert.Equal(t, []string{"bat7", "bat6"}, split.TeamB.PlayerIDs())
	assert.Contains(t, split.Warnings, "no wicketkeeper in pool")
}

func TestQuickSplitTinyPools(t *testing.T) {
	ctx := context.Background()
	alloc := selection.New()

	split, err := alloc.QuickSplit(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, split.TeamA.Size()+split.TeamB.Size())
	assert.Contains(t, split.Warnings, "pool of 0 cannot form two teams")

	split, err = alloc.QuickSplit(ctx, []model.Candidate{flat("solo", model.RoleWicketkeeper, 5)})
	require.NoError(t, err)
	assert.Equal(t, 1, split.TeamA.Size())
	assert.Contains(t, split.Warnings, "pool of 1 cannot form two teams")
	assert.Contains(t, split.Warnings, "Team B has no wicketkeeper")
}

func TestQuickSplitRejectsMalformedInput(t *testing.T) {
	pool := []model.Candidate{flat("a", model.RoleBatsman, 5), flat("a", model.RoleBowler, 5)}
	_, err := selection.New().QuickSplit(context.Background(), pool)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestWeightedSplitSeedsKeeperAndLeader(t *testing.T) {
	captain := flat("captain", model.RoleBatsman, 7)
	captain.Player.IsCaptain = true
	vice := flat("vice", model.RoleBowler, 6)
	vice.Player.IsViceCaptain = true
	lefty := flat("lefty", model.RoleBatsman, 6)
	lefty.Player.BattingHand = model.BattingLeft
	pace := flat("pace", model.RoleBowler, 7)
	pace.Player.BowlingStyle = model.BowlingFast
	spin := flat("spin", model.RoleBowler, 7)
	spin.Player.BowlingStyle = model.BowlingOffSpin

	pool := []model.Candidate{
		lefty, pace, flat("keeper", model.RoleWicketkeeper, 8), spin, captain, vice,
		flat("keeper2", model.RoleWicketkeeper, 5), flat("extra", model.RoleBatsman, 5),
	}
	split, err := selection.New().WeightedBalancedSplit(context.Background(), pool)
	require.NoError(t, err)

	assertPartition(t, pool, split)
	assert.Equal(t, "keeper", split.TeamA.Players[0].Player.ID)
	assert.Equal(t, "captain", split.TeamB.Players[0].Player.ID)
	assert.Contains(t, split.TeamA.Players[0].Rationale, "seeded wicketkeeper")
	assert.Contains(t, split.TeamB.PlayerIDs(), "keeper2", "second keeper joins the lighter side")
	assert.Equal(t, 1, split.TeamA.Balance.Keepers)
	assert.Equal(t, 1, split.TeamB.Balance.Keepers)
}

func TestWeightedSplitWithoutSeedTiers(t *testing.T) {
	pool := []model.Candidate{
		flat("a", model.RoleBatsman, 9),
		flat("b", model.RoleBatsman, 8),
		flat("c", model.RoleBatsman, 3),
		flat("d", model.RoleBatsman, 2),
	}
	split, err := selection.New().WeightedBalancedSplit(context.Background(), pool)
	require.NoError(t, err)

	assertPartition(t, pool, split)
	assert.ElementsMatch(t, []string{"a", "d"}, split.TeamA.PlayerIDs())
	assert.ElementsMatch(t, []string{"b", "c"}, split.TeamB.PlayerIDs())
}

func TestCompositeScore(t *testing.T) {
	c := flat("x", model.RoleBatsman, 6)
	c.Snapshot.CurrentForm = model.FormGood
	c.Player.Skills.PressureHandling = 4
	// 6*3 + 8*1.5 + 6 + 4*0.5
	assert.InDelta(t, 38.0, selection.CompositeScore(c), 1e-9)

	assert.Equal(t, 10.0, selection.FormScore(model.FormExcellent))
	assert.Equal(t, 5.0, selection.FormScore(model.FormUnknown))
	assert.Equal(t, 3.0, selection.FormScore(model.FormPoor))
}
