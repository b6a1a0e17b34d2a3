package opportunity_test

import (
	"testing"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/opportunity"
	. "github.com/smartystreets/goconvey/convey"
)

func snap(available, played int) model.SeasonSnapshot {
	return model.SeasonSnapshot{PlayerID: "p", MatchesAvailable: available, MatchesPlayed: played}
}

func TestRatio(t *testing.T) {
	Convey("Given season snapshots", t, func() {
		So(opportunity.Ratio(snap(10, 4)), ShouldAlmostEqual, 0.4)
		So(opportunity.Ratio(snap(0, 0)), ShouldEqual, 0)
	})
}

func TestClassify(t *testing.T) {
	Convey("Given the default target of 0.6", t, func() {
		target := opportunity.DefaultTarget

		Convey("Then ratios map onto the expected bands", func() {
			So(opportunity.ClassifyRatio(0.1, target), ShouldEqual, opportunity.StatusNeedsGames)
			So(opportunity.ClassifyRatio(0.39, target), ShouldEqual, opportunity.StatusNeedsGames)
			So(opportunity.ClassifyRatio(0.4, target), ShouldEqual, opportunity.StatusBelowTarget)
			So(opportunity.ClassifyRatio(0.59, target), ShouldEqual, opportunity.StatusBelowTarget)
			So(opportunity.ClassifyRatio(0.6, target), ShouldEqual, opportunity.StatusOnTrack)
			So(opportunity.ClassifyRatio(0.8, target), ShouldEqual, opportunity.StatusOnTrack)
			So(opportunity.ClassifyRatio(0.81, target), ShouldEqual, opportunity.StatusWellCovered)
		})

		Convey("Then a player with nothing available is NEW", func() {
			So(opportunity.Classify(snap(0, 0), target), ShouldEqual, opportunity.StatusNew)
		})

		Convey("Then classification never moves down as the ratio grows", func() {
			for _, tgt := range []float64{0.3, 0.6, 0.75, 0.9} {
				prev := -1
				for i := 0; i <= 100; i++ {
					ord := opportunity.ClassifyRatio(float64(i)/100, tgt).Ordinal()
					So(ord, ShouldBeGreaterThanOrEqualTo, prev)
					prev = ord
				}
			}
		})
	})
}

func TestGamesNeeded(t *testing.T) {
	Convey("Given played and available counts", t, func() {
		So(opportunity.GamesNeeded(snap(10, 2), 0.6), ShouldEqual, 4)
		So(opportunity.GamesNeeded(snap(10, 9), 0.6), ShouldEqual, 0)
		So(opportunity.GamesNeeded(snap(7, 0), 0.6), ShouldEqual, 5)

		Convey("Then float products do not round up a whole target", func() {
			So(opportunity.GamesNeeded(snap(10, 0), 0.7), ShouldEqual, 7)
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a snapshot and no explicit target", t, func() {
		r := opportunity.Evaluate(snap(5, 1), 0)

		Convey("Then the default target is used", func() {
			So(r.Target, ShouldEqual, opportunity.DefaultTarget)
			So(r.Status, ShouldEqual, opportunity.StatusNeedsGames)
			So(r.GamesNeeded, ShouldEqual, 2)
			So(r.Ratio, ShouldAlmostEqual, 0.2)
		})
	})
}
