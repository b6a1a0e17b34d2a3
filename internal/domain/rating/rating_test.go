package rating_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/squadcraft/internal/domain/dedupe"
	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

var day0 = time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)

// innings builds batting-only records; the i-th record is i days after day0.
func innings(playerID string, recs ...model.PerformanceRecord) []model.PerformanceRecord {
	out := make([]model.PerformanceRecord, len(recs))
	for i, r := range recs {
		r.PlayerID = playerID
		r.MatchID = "m" + string(rune('a'+i))
		r.MatchDate = day0.AddDate(0, 0, i)
		r.Batted = true
		out[i] = r
	}
	return out
}

var (
	scores7 = model.PerformanceRecord{Runs: 30, BallsFaced: 30, NotOut: true}
	scores8 = model.PerformanceRecord{Runs: 50, BallsFaced: 40}
	scores6 = model.PerformanceRecord{Runs: 20, BallsFaced: 20}
	scores9 = model.PerformanceRecord{Runs: 100, BallsFaced: 100, NotOut: true, PlayerOfMatch: true}
	scores4 = model.PerformanceRecord{Runs: 0, BallsFaced: 2}
)

func batter() model.Player {
	return model.Player{
		ID:          "p1",
		PrimaryRole: model.RoleBatsman,
		Skills:      model.Skills{Batting: 6, Bowling: 3, Fielding: 5, PowerHitting: 5, Running: 5, PressureHandling: 5},
		Experience:  5,
		Fitness:     7,
	}
}

func TestBlend(t *testing.T) {
	ctx := context.Background()
	fixed := func() time.Time { return day0 }

	Convey("Given a batter rated 6", t, func() {
		b := rating.New(rating.WithClock(fixed))
		p := batter()

		Convey("When recent batting scores average 7.4", func() {
			res := b.Blend(ctx, p, innings(p.ID, scores7, scores8, scores6, scores7, scores9))

			Convey("Then the blend rounds back to 6 and nothing changes", func() {
				So(res.Changes, ShouldBeEmpty)
				So(res.Excluded, ShouldBeFalse)
			})
		})

		Convey("When recent batting scores average 9", func() {
			res := b.Blend(ctx, p, innings(p.ID, scores9, scores9, scores9, scores9, scores9))

			Convey("Then exactly one batting change from 6 to 7 is emitted", func() {
				So(res.Changes, ShouldHaveLength, 1)
				c := res.Changes[0]
				So(c.Discipline, ShouldEqual, model.DisciplineBatting)
				So(c.Previous, ShouldEqual, 6)
				So(c.New, ShouldEqual, 7)
				So(c.Delta, ShouldEqual, 1)
				So(c.AverageScore, ShouldAlmostEqual, 9.0)
				So(c.SampleSize, ShouldEqual, 5)
				So(c.ID, ShouldNotBeEmpty)
				So(c.AppliedAt.Equal(day0), ShouldBeTrue)
			})

			Convey("Then form is excellent", func() {
				So(res.Form, ShouldEqual, model.FormExcellent)
			})
		})

		Convey("When only older matches are strong", func() {
			recs := innings(p.ID, scores9, scores4, scores4, scores4, scores4, scores4)
			res := b.Blend(ctx, p, recs)

			Convey("Then matches outside the window are ignored", func() {
				So(res.Changes, ShouldHaveLength, 1)
				So(res.Changes[0].New, ShouldEqual, 5)
				So(res.Changes[0].MatchIDs, ShouldNotContain, "ma")
			})
		})

		Convey("When records belong to another player", func() {
			res := b.Blend(ctx, p, innings("someone-else", scores9, scores9))

			Convey("Then they are ignored", func() {
				So(res.Changes, ShouldBeEmpty)
				So(res.Form, ShouldEqual, model.FormUnknown)
			})
		})

		Convey("When there are no records at all", func() {
			res := b.Blend(ctx, p, nil)

			Convey("Then the result degrades to no change", func() {
				So(res.Changes, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a player excluded from auto rating", t, func() {
		p := batter()
		p.ExcludeFromAutoRating = true
		p.ExclusionReason = "returning from long injury"

		Convey("When blended", func() {
			res := rating.New().Blend(ctx, p, innings(p.ID, scores9, scores9))

			Convey("Then the player is skipped and reported with the reason", func() {
				So(res.Excluded, ShouldBeTrue)
				So(res.ExclusionReason, ShouldEqual, "returning from long injury")
				So(res.Changes, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a blender with a consumed-performance tracker", t, func() {
		b := rating.New(rating.WithTracker(dedupe.NewInMemoryDeduper()))
		p := batter()
		recs := innings(p.ID, scores9, scores9, scores9, scores9, scores9)

		Convey("When a preview runs first", func() {
			first := b.Preview(ctx, p, recs)
			second := b.Preview(ctx, p, recs)

			Convey("Then previews consume nothing", func() {
				So(first.Changes, ShouldHaveLength, 1)
				So(second.Changes, ShouldHaveLength, 1)
			})
		})

		Convey("When the change is applied and the same window is blended again", func() {
			first := b.Blend(ctx, p, recs)
			So(first.Changes, ShouldHaveLength, 1)
			p.Skills.Set(first.Changes[0].Discipline, first.Changes[0].New)

			second := b.Blend(ctx, p, recs)

			Convey("Then no further change is produced", func() {
				So(second.Changes, ShouldBeEmpty)
			})
		})

		Convey("When a new match arrives after the update", func() {
			b.Blend(ctx, p, recs)
			p.Skills.Batting = 7
			more := append(recs, innings(p.ID, scores4)...)
			more[len(more)-1].MatchID = "new"
			more[len(more)-1].MatchDate = day0.AddDate(0, 0, 30)

			res := b.Blend(ctx, p, more)

			Convey("Then only the new match is averaged", func() {
				So(res.Changes, ShouldHaveLength, 1)
				So(res.Changes[0].SampleSize, ShouldEqual, 1)
				So(res.Changes[0].MatchIDs, ShouldResemble, []string{"new"})
				So(res.Changes[0].New, ShouldEqual, 6)
			})
		})

		Convey("When a blended change is released without being applied", func() {
			first := b.Blend(ctx, p, recs)
			b.Release(ctx, first.Changes)
			again := b.Blend(ctx, p, recs)

			Convey("Then the same change is produced again", func() {
				So(again.Changes, ShouldHaveLength, 1)
				So(again.Changes[0].New, ShouldEqual, first.Changes[0].New)
			})
		})

		Convey("When a narrower window is requested", func() {
			narrow := b.Window(2)
			res := narrow.Blend(ctx, p, recs)

			Convey("Then it averages fewer matches and shares the tracker", func() {
				So(narrow.Lookback(), ShouldEqual, 2)
				So(b.Lookback(), ShouldEqual, rating.DefaultLookback)
				So(res.Changes, ShouldHaveLength, 1)
				So(res.Changes[0].SampleSize, ShouldEqual, 2)
				So(b.Blend(ctx, p, recs[3:]).Changes, ShouldBeEmpty)
			})
		})
	})
}

func TestRate(t *testing.T) {
	Convey("Given the default blender", t, func() {
		b := rating.New()

		Convey("Then the blend matches current×0.7 + average×0.3 rounded", func() {
			So(b.Rate(6, 7.4), ShouldEqual, 6)
			So(b.Rate(6, 9.0), ShouldEqual, 7)
			So(b.Rate(5, 1.0), ShouldEqual, 4)
		})

		Convey("Then the output always stays within [1,10]", func() {
			for cur := 1; cur <= 10; cur++ {
				for _, avg := range []float64{1, 5.5, 10} {
					r := b.Rate(cur, avg)
					So(r, ShouldBeBetweenOrEqual, 1, 10)
				}
			}
		})
	})

	Convey("Given a custom current weight", t, func() {
		b := rating.New(rating.WithCurrentWeight(0.5), rating.WithLookback(3))

		Convey("Then the average carries the remaining weight", func() {
			So(b.Rate(4, 8), ShouldEqual, 6)
			So(b.Lookback(), ShouldEqual, 3)
		})
	})
}

func TestClassifyForm(t *testing.T) {
	Convey("Given recent performances", t, func() {
		Convey("When a match has both batting and bowling", func() {
			rec := model.PerformanceRecord{
				Batted: true, Runs: 20, BallsFaced: 20,
				Bowled: true, Overs: 4, RunsConceded: 20, Wickets: 5, Maidens: 1,
			}
			form, avg, ok := rating.ClassifyForm([]model.PerformanceRecord{rec}, 5)

			Convey("Then the better discipline counts", func() {
				So(ok, ShouldBeTrue)
				So(avg, ShouldAlmostEqual, 9.25)
				So(form, ShouldEqual, model.FormExcellent)
			})
		})

		Convey("When matches have neither batting nor bowling", func() {
			form, _, ok := rating.ClassifyForm([]model.PerformanceRecord{{Catches: 2}, {}}, 5)

			Convey("Then no form can be derived", func() {
				So(ok, ShouldBeFalse)
				So(form, ShouldEqual, model.FormUnknown)
			})
		})

		Convey("When the average is middling", func() {
			form, avg, ok := rating.ClassifyForm(innings("p", scores6, scores4), 5)

			Convey("Then the form is average", func() {
				So(ok, ShouldBeTrue)
				So(avg, ShouldAlmostEqual, 5.0)
				So(form, ShouldEqual, model.FormAverage)
			})
		})
	})

	Convey("FormFor maps thresholds", t, func() {
		So(rating.FormFor(8), ShouldEqual, model.FormExcellent)
		So(rating.FormFor(7.99), ShouldEqual, model.FormGood)
		So(rating.FormFor(6), ShouldEqual, model.FormGood)
		So(rating.FormFor(4), ShouldEqual, model.FormAverage)
		So(rating.FormFor(3.9), ShouldEqual, model.FormPoor)
	})
}
