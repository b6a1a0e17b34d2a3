package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/squadcraft/internal/config"
	"github.com/okian/squadcraft/internal/rostergen"
	"github.com/okian/squadcraft/pkg/logger"
)

func TestBuildService(t *testing.T) {
	convey.Convey("Given configuration pointing at a generated roster", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		roster := filepath.Join(dir, "roster.yaml")
		doc := rostergen.NewGenerator(rostergen.Config{Players: 16, Matches: 4, Seed: 3}).Roster()
		convey.So(rostergen.WriteFile(roster, doc), convey.ShouldBeNil)

		cfg := config.New()
		cfg.RosterFile = roster
		cfg.LedgerFile = filepath.Join(dir, "ledger.jsonl")
		cfg.WorkerCount = 2

		convey.Convey("When the service is built", func() {
			svc, err := buildService(ctx, cfg, logger.Discard())
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the roster is loaded", func() {
				stats := svc.GetStats()
				convey.So(stats["players"], convey.ShouldEqual, 16)
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
				convey.So(stats["started"], convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the roster file is missing", func() {
			cfg.RosterFile = filepath.Join(dir, "missing.yaml")
			svc, err := buildService(ctx, cfg, logger.Discard())

			convey.Convey("Then building fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(svc, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the suggestion composer is configured", func() {
			cfg.Composer = config.ComposerSuggestion
			cfg.SuggestionURL = "http://127.0.0.1:1/suggest"
			svc, err := buildService(ctx, cfg, logger.Discard())

			convey.Convey("Then the service still builds", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMux(t *testing.T) {
	convey.Convey("Given a started service behind the mux", t, func() {
		ctx := context.Background()
		svc, err := buildService(ctx, config.New(), logger.Discard())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(svc))
		defer srv.Close()

		for _, path := range []string{"/healthz", "/stats", "/openapi.yaml"} {
			convey.Convey("When GET "+path+" is requested", func() {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = resp.Body.Close() }()

				convey.Convey("Then it answers 200", func() {
					convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				})
			})
		}

		convey.Convey("When the metrics updaters run", func() {
			convey.Convey("Then they do not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMetricsUpdatersStop(t *testing.T) {
	convey.Convey("Given a context that expires", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		svc, err := buildService(ctx, config.New(), logger.Discard())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then both updaters return", func() {
			done := make(chan struct{}, 2)
			go func() { startSystemMetricsUpdater(ctx); done <- struct{}{} }()
			go func() { startServiceMetricsUpdater(ctx, svc); done <- struct{}{} }()
			for range 2 {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("metrics updater did not stop")
				}
			}
		})
	})
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given squadcraft environment variables", t, func() {
		t.Setenv("SQUADCRAFT_ADDR", ":8088")
		t.Setenv("SQUADCRAFT_WORKER_COUNT", "3")
		t.Setenv("SQUADCRAFT_CONFIG", "")

		convey.Convey("Then the loaded configuration builds a service", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8088")

			svc, err := buildService(context.Background(), cfg, logger.Discard())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.GetStats()["workerCount"], convey.ShouldEqual, 3)
		})
	})
}
