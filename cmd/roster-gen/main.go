package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/okian/squadcraft/internal/rostergen"
	"github.com/okian/squadcraft/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers = 16
	defaultMatches = 10
	defaultWorkers = 2 // multiplier for runtime.NumCPU()
	defaultTimeout = 30 * time.Second
	defaultRunTime = 10 * time.Minute
)

func main() {
	var (
		players = flag.Int("players", defaultPlayers, "Number of players in the roster")
		matches = flag.Int("matches", defaultMatches, "Matches already played this season")
		season  = flag.String("season", "2026", "Season label")
		seed    = flag.Uint64("seed", 1, "Random seed; the same seed produces the same roster")
		output  = flag.String("output", "roster.yaml", "Roster YAML destination (empty to skip)")
		baseURL = flag.String("url", "", "Service base URL to submit fresh matches to (empty to skip)")
		fresh   = flag.Int("fresh", 1, "Fresh matches to submit after the seeded ones")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submissions")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTime)
	defer cancel()

	cfg := rostergen.Config{
		Players: *players,
		Matches: *matches,
		Season:  *season,
		Seed:    *seed,
		Output:  *output,
		BaseURL: *baseURL,
		Fresh:   *fresh,
		Workers: *workers,
		Timeout: *timeout,
		Logger:  logger.Get().Named("roster-gen"),
	}
	if err := run(ctx, cfg); err != nil {
		os.Stderr.WriteString("roster-gen failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg rostergen.Config) error {
	log := cfg.Logger
	gen := rostergen.NewGenerator(cfg)
	doc := gen.Roster()

	if cfg.Output != "" {
		if err := rostergen.WriteFile(cfg.Output, doc); err != nil {
			return err
		}
		log.Info(ctx, "roster written",
			logger.String("path", cfg.Output),
			logger.Int("players", len(doc.Players)),
			logger.Int("performances", len(doc.Performances)),
		)
	}

	if cfg.BaseURL == "" || cfg.Fresh <= 0 {
		return nil
	}
	records := gen.Matches(doc.Players, cfg.Matches, cfg.Fresh)
	stats, err := rostergen.Submit(ctx, cfg, doc.Players, records)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d records rejected", stats.Failed, len(records))
	}
	return nil
}
