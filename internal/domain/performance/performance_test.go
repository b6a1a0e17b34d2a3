package performance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/performance"
)

func TestBatting(t *testing.T) {
	tests := []struct {
		name string
		rec  model.PerformanceRecord
		want float64
	}{
		{
			name: "did not bat",
			rec:  model.PerformanceRecord{Runs: 40},
			want: performance.DidNotParticipate,
		},
		{
			name: "quick century",
			rec:  model.PerformanceRecord{Batted: true, Runs: 105, BallsFaced: 60, Fours: 10, Sixes: 3},
			want: 9.5,
		},
		{
			name: "early dismissal",
			rec:  model.PerformanceRecord{Batted: true, Runs: 0, BallsFaced: 3},
			want: 4,
		},
		{
			name: "slow start",
			rec:  model.PerformanceRecord{Batted: true, Runs: 12, BallsFaced: 20},
			want: 5,
		},
		{
			name: "unbeaten chase in a must-win clamps at ten",
			rec:  model.PerformanceRecord{Batted: true, Runs: 25, BallsFaced: 20, NotOut: true, Importance: model.ImportanceMustWin},
			want: 10,
		},
		{
			name: "low stakes duck",
			rec:  model.PerformanceRecord{Batted: true, Runs: 0, BallsFaced: 4, Importance: model.ImportanceLowStakes},
			want: 3,
		},
		{
			name: "not out below five is not punished",
			rec:  model.PerformanceRecord{Batted: true, Runs: 2, BallsFaced: 3, NotOut: true},
			want: 5,
		},
		{
			name: "player of the match bonus",
			rec:  model.PerformanceRecord{Batted: true, Runs: 55, BallsFaced: 50, Fours: 5, PlayerOfMatch: true},
			want: 8.25,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, performance.Batting(tt.rec), 1e-9)
		})
	}
}

func TestBowling(t *testing.T) {
	tests := []struct {
		name string
		rec  model.PerformanceRecord
		want float64
	}{
		{
			name: "did not bowl",
			rec:  model.PerformanceRecord{Wickets: 2},
			want: performance.DidNotParticipate,
		},
		{
			name: "five-for with a maiden",
			rec:  model.PerformanceRecord{Bowled: true, Overs: 4, RunsConceded: 20, Wickets: 5, Maidens: 1},
			want: 9.25,
		},
		{
			name: "expensive and wayward",
			rec:  model.PerformanceRecord{Bowled: true, Overs: 3, RunsConceded: 45, Wides: 4, NoBalls: 1},
			want: 3,
		},
		{
			name: "partial overs count by balls",
			rec:  model.PerformanceRecord{Bowled: true, Overs: 3.4, RunsConceded: 22, Wickets: 2},
			want: 7.5,
		},
		{
			name: "no legal balls skips economy",
			rec:  model.PerformanceRecord{Bowled: true, Wides: 2},
			want: 4.5,
		},
		{
			name: "important fixture multiplier",
			rec:  model.PerformanceRecord{Bowled: true, Overs: 4, RunsConceded: 30, Wickets: 1, Importance: model.ImportanceImportant},
			want: 7.8125,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, performance.Bowling(tt.rec), 1e-9)
		})
	}
}

func TestFielding(t *testing.T) {
	tests := []struct {
		name string
		rec  model.PerformanceRecord
		want float64
	}{
		{name: "quiet day", rec: model.PerformanceRecord{}, want: 5},
		{name: "catches and a run-out offset a drop", rec: model.PerformanceRecord{Catches: 3, RunOuts: 1, DroppedCatches: 1}, want: 6.75},
		{name: "keeper stumpings", rec: model.PerformanceRecord{Catches: 1, Stumpings: 2}, want: 6.75},
		{name: "butterfingers in a dead rubber", rec: model.PerformanceRecord{DroppedCatches: 2, Importance: model.ImportanceLowStakes}, want: 2.625},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := performance.Fielding(tt.rec)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.True(t, performance.Valid(got))
		})
	}
}

func TestScoreBounds(t *testing.T) {
	extremes := []model.PerformanceRecord{
		{Batted: true, Bowled: true, Runs: 200, BallsFaced: 50, Fours: 20, Sixes: 10, NotOut: true, Overs: 4, RunsConceded: 2, Wickets: 7, Maidens: 3, Catches: 5, RunOuts: 3, Stumpings: 3, PlayerOfMatch: true, Importance: model.ImportanceMustWin},
		{Batted: true, Bowled: true, BallsFaced: 30, Overs: 1, RunsConceded: 40, Wides: 6, NoBalls: 4, DroppedCatches: 5, Importance: model.ImportanceLowStakes},
	}
	for _, rec := range extremes {
		s := performance.Score(rec)
		for _, d := range model.Disciplines {
			assert.GreaterOrEqual(t, s.Get(d), 1.0)
			assert.LessOrEqual(t, s.Get(d), 10.0)
		}
	}
}
