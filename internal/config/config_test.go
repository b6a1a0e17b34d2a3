package config_test

import (
	"errors"
	"runtime"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/squadcraft/internal/config"
)

func TestConfigNew(t *testing.T) {
	Convey("Given a new config", t, func() {
		cfg := config.New()

		Convey("Then it has the selection defaults", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.SquadSize, ShouldEqual, 11)
			So(cfg.MinBowlers, ShouldEqual, 4)
			So(cfg.BowlingThreshold, ShouldEqual, 6)
			So(cfg.OpportunityTarget, ShouldEqual, 0.6)
			So(cfg.OpportunityWeight, ShouldEqual, 10)
			So(cfg.Lookback, ShouldEqual, 5)
			So(cfg.RebalanceCap, ShouldEqual, 10)
			So(cfg.WorkerCount, ShouldEqual, runtime.NumCPU())
			So(cfg.Composer, ShouldEqual, config.ComposerDeterministic)
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given configs with one bad setting", t, func() {
		cases := []struct {
			name   string
			mutate func(c *config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"zero squad", func(c *config.Config) { c.SquadSize = 0 }},
			{"zero target", func(c *config.Config) { c.OpportunityTarget = 0 }},
			{"target above one", func(c *config.Config) { c.OpportunityTarget = 1.2 }},
			{"unknown composer", func(c *config.Config) { c.Composer = "oracle" }},
			{"suggestion without url", func(c *config.Config) { c.Composer = config.ComposerSuggestion }},
			{"non-positive lookback", func(c *config.Config) { c.Lookback = 0 }},
			{"non-positive queue size", func(c *config.Config) { c.QueueSize = 0 }},
		}
		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)

			Convey("Then "+tc.name+" is rejected", func() {
				So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), ShouldBeTrue)
			})
		}

		Convey("Then a suggestion composer with a url is accepted", func() {
			cfg := config.New()
			cfg.Composer = config.ComposerSuggestion
			cfg.SuggestionURL = "http://localhost:9999/suggest"
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.SuggestionTimeout().Milliseconds(), ShouldEqual, 2000)
		})
	})
}
