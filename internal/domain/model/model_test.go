package model_test

import (
	"errors"
	"testing"

	"github.com/okian/squadcraft/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validPlayer(id string) model.Player {
	return model.Player{
		ID:          id,
		Name:        "Player " + id,
		PrimaryRole: model.RoleBatsman,
		Skills:      model.Skills{Batting: 7, Bowling: 3, Fielding: 6, PowerHitting: 5, Running: 6, PressureHandling: 5},
		Experience:  5,
		Fitness:     8,
		Injury:      model.InjuryFit,
	}
}

func TestValidate(t *testing.T) {
	Convey("Given a player record", t, func() {
		p := validPlayer("p1")

		Convey("When every field is in range", func() {
			Convey("Then it validates", func() {
				So(model.Validate(p), ShouldBeNil)
			})
		})

		Convey("When a skill is outside [1,10]", func() {
			p.Skills.Bowling = 11
			err := model.Validate(p)

			Convey("Then it is an input error naming the field", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
				var ie *model.InputError
				So(errors.As(err, &ie), ShouldBeTrue)
				So(ie.Field, ShouldEqual, "skills.bowling")
				So(ie.PlayerID, ShouldEqual, "p1")
			})
		})

		Convey("When experience is zero", func() {
			p.Experience = 0
			So(errors.Is(model.Validate(p), model.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the role is unknown", func() {
			p.PrimaryRole = "goalkeeper"
			So(model.Validate(p).Error(), ShouldContainSubstring, "unknown role")
		})

		Convey("When the id is empty", func() {
			p.ID = ""
			So(model.Validate(p), ShouldNotBeNil)
		})

		Convey("When the injury status is unknown", func() {
			p.Injury = "broken"
			So(model.Validate(p), ShouldNotBeNil)
		})
	})
}

func TestValidatePool(t *testing.T) {
	Convey("Given a pool", t, func() {
		Convey("When ids repeat", func() {
			pool := []model.Candidate{{Player: validPlayer("a")}, {Player: validPlayer("a")}}
			err := model.ValidatePool(pool)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "duplicate")
			So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When a captain's choice rank is out of range", func() {
			pool := []model.Candidate{{Player: validPlayer("a"), CaptainChoiceRank: 4}}
			So(model.ValidatePool(pool), ShouldNotBeNil)
		})

		Convey("When the pool is clean", func() {
			pool := []model.Candidate{{Player: validPlayer("a")}, {Player: validPlayer("b"), CaptainChoiceRank: 1}}
			So(model.ValidatePool(pool), ShouldBeNil)
		})
	})
}

func TestPerformanceRecordHelpers(t *testing.T) {
	Convey("Given cricket-notation overs", t, func() {
		So(model.PerformanceRecord{Overs: 4}.LegalBalls(), ShouldEqual, 24)
		So(model.PerformanceRecord{Overs: 3.4}.LegalBalls(), ShouldEqual, 22)
		So(model.PerformanceRecord{Overs: 0.1}.LegalBalls(), ShouldEqual, 1)
		So(model.PerformanceRecord{}.LegalBalls(), ShouldEqual, 0)
	})

	Convey("Given boundary and extras counters", t, func() {
		r := model.PerformanceRecord{Fours: 3, Sixes: 2, Wides: 4, NoBalls: 1}
		So(r.Boundaries(), ShouldEqual, 5)
		So(r.IllegalDeliveries(), ShouldEqual, 5)
	})
}

func TestPlayerHelpers(t *testing.T) {
	Convey("Given role-derived helpers", t, func() {
		p := validPlayer("k")

		Convey("A wicketkeeper is recognized by role or by flag", func() {
			So(p.IsKeeper(), ShouldBeFalse)
			p.IsWicketkeeper = true
			So(p.IsKeeper(), ShouldBeTrue)
			p.IsWicketkeeper = false
			p.PrimaryRole = model.RoleWicketkeeper
			So(p.IsKeeper(), ShouldBeTrue)
		})

		Convey("Bowling capability follows role or bowling skill", func() {
			So(p.BowlingCapable(6), ShouldBeFalse)
			p.Skills.Bowling = 6
			So(p.BowlingCapable(6), ShouldBeTrue)
			p.Skills.Bowling = 2
			p.PrimaryRole = model.RoleBowlingAllRounder
			So(p.BowlingCapable(6), ShouldBeTrue)
		})

		Convey("Batting category prefers the recorded position", func() {
			p.BattingPosition = model.PositionOpener
			So(p.BattingCategory(), ShouldEqual, model.PositionOpener)
			p.BattingPosition = ""
			p.PrimaryRole = model.RoleBowler
			So(p.BattingCategory(), ShouldEqual, model.PositionLower)
		})

		Convey("Skill updates are clamped", func() {
			p.Skills.Set(model.DisciplineBatting, 14)
			So(p.Skills.Batting, ShouldEqual, 10)
			p.Skills.Set(model.DisciplineFielding, -2)
			So(p.Skills.Fielding, ShouldEqual, 1)
		})
	})
}

func TestParsing(t *testing.T) {
	Convey("Given textual labels", t, func() {
		m, ok := model.ParseMode("win_focused")
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, model.ModeWinFocused)

		m, ok = model.ParseMode("")
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, model.ModeBalanced)

		_, ok = model.ParseMode("chaos")
		So(ok, ShouldBeFalse)

		So(model.ParseForm("good"), ShouldEqual, model.FormGood)
		So(model.ParseForm("great"), ShouldEqual, model.FormUnknown)
		So(model.ImportanceTier("").Multiplier(), ShouldEqual, 1.0)
		So(model.ImportanceMustWin.Multiplier(), ShouldEqual, 1.5)
	})
}
