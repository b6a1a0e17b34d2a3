// Package service wires the selection engine, the rating pipeline and the
// roster store into the operations served by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	jobqueue "github.com/okian/squadcraft/internal/adapters/mq/queue"
	workerpool "github.com/okian/squadcraft/internal/adapters/mq/worker"
	"github.com/okian/squadcraft/internal/adapters/repository"
	"github.com/okian/squadcraft/internal/domain/dedupe"
	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/opportunity"
	"github.com/okian/squadcraft/internal/domain/rating"
	"github.com/okian/squadcraft/internal/domain/scoring"
	"github.com/okian/squadcraft/internal/domain/selection"
	"github.com/okian/squadcraft/pkg/logger"
	"github.com/okian/squadcraft/pkg/metrics"
)

const playerLockStripes = 64

// Service implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	ledger   *repository.Ledger
	tracker  dedupe.Deduper
	jobIDs   dedupe.Deduper
	scorer   *scoring.Scorer
	alloc    *selection.Allocator
	composer selection.Composer
	blender  *rating.Blender
	queue    jobqueue.Queue
	pool     *workerpool.Pool
	suggest  selection.SuggestionSource

	// Configuration
	workerCount       int
	queueSize         int
	dedupeSize        int
	maxPoolSize       int
	squadSize         int
	minBowlers        int
	bowlingThreshold  int
	rebalanceCap      int
	opportunityTarget float64
	opportunityWeight float64
	lookback          int

	// Per-player serialization of read, blend and apply.
	playerLocks [playerLockStripes]sync.Mutex

	// State
	started bool

	logger logger.Logger
}

// New constructs a Service. Selection and rating operations work right away;
// Start is needed only for queued rating jobs.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU(),
		queueSize:         10_000,
		dedupeSize:        50_000,
		maxPoolSize:       200,
		squadSize:         selection.DefaultSquadSize,
		minBowlers:        selection.DefaultMinBowlers,
		bowlingThreshold:  selection.DefaultBowlingThreshold,
		rebalanceCap:      selection.DefaultRebalanceCap,
		opportunityTarget: opportunity.DefaultTarget,
		lookback:          rating.DefaultLookback,
		logger:            logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithLogger(s.logger.Named("store")))
	}
	if s.ledger == nil {
		s.ledger = repository.NewLedger("")
	}
	s.tracker = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobIDs = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	var scoringOpts []scoring.Option
	if s.opportunityWeight > 0 {
		scoringOpts = append(scoringOpts, scoring.WithOpportunityWeight(s.opportunityWeight))
	}
	s.scorer = scoring.New(scoringOpts...)
	s.alloc = selection.New(
		selection.WithScorer(s.scorer),
		selection.WithSquadSize(s.squadSize),
		selection.WithMinBowlers(s.minBowlers),
		selection.WithBowlingThreshold(s.bowlingThreshold),
		selection.WithRebalanceCap(s.rebalanceCap),
		selection.WithLogger(s.logger.Named("allocator")),
	)
	if s.suggest != nil {
		s.composer = selection.NewSuggestionComposer(s.alloc, s.suggest, s.logger.Named("composer"))
	} else {
		s.composer = selection.NewDeterministicComposer(s.alloc)
	}
	s.blender = rating.New(
		rating.WithLookback(s.lookback),
		rating.WithTracker(s.tracker),
	)
	return s
}

// Start creates the rating job queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting squadcraft service...")

	s.queue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, workerpool.WithLogger(s.logger))
	s.pool.Start(ctx)

	s.started = true
	metrics.UpdateRosterPlayers(s.store.Count(ctx))
	s.logger.Info(ctx, "squadcraft service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("players", s.store.Count(ctx)),
	)
	return nil
}

// Stop drains the worker pool.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping squadcraft service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "squadcraft service stopped")
}

// LoadRoster seeds the store from a YAML roster file.
func (s *Service) LoadRoster(ctx context.Context, path string) error {
	doc, err := repository.LoadRosterFile(ctx, path, s.store)
	if err != nil {
		return err
	}
	metrics.UpdateRosterPlayers(s.store.Count(ctx))
	s.logger.Info(ctx, "roster loaded",
		logger.String("path", path),
		logger.String("season", doc.Season),
		logger.Int("players", len(doc.Players)),
		logger.Int("performances", len(doc.Performances)),
	)
	return nil
}

func (s *Service) checkPool(pool []model.Candidate) error {
	if s.maxPoolSize > 0 && len(pool) > s.maxPoolSize {
		return &model.InputError{Field: "pool", Reason: fmt.Sprintf("%d candidates exceed the limit of %d", len(pool), s.maxPoolSize)}
	}
	return nil
}

// SelectSquad composes a squad from the supplied pool.
func (s *Service) SelectSquad(ctx context.Context, req selection.Request) (model.TeamComposition, error) {
	if err := s.checkPool(req.Pool); err != nil {
		return model.TeamComposition{}, err
	}
	start := time.Now()
	comp, err := s.composer.Compose(ctx, req)
	metrics.RecordSelectionLatency("select", float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordErrorByComponent("selection", "invalid_input")
		return model.TeamComposition{}, err
	}
	metrics.RecordComposition("select", comp.Source, len(comp.Warnings))
	return comp, nil
}

// SelectSquadFromRoster builds the pool from the store and composes a squad.
func (s *Service) SelectSquadFromRoster(ctx context.Context, req selection.RosterRequest) (model.TeamComposition, error) {
	pool, err := s.Candidates(ctx, req.PlayerIDs, req.Season, req.CaptainChoices)
	if err != nil {
		return model.TeamComposition{}, err
	}
	return s.SelectSquad(ctx, selection.Request{Pool: pool, Target: req.Target, Mode: req.Mode, Match: req.Match})
}

// Candidates assembles pool entries from the store. A player without a
// snapshot for the season gets an empty one; a snapshot without a form label
// takes the form of the player's recent performances.
func (s *Service) Candidates(ctx context.Context, ids []string, season string, captainChoices []string) ([]model.Candidate, error) {
	var players []model.Player
	if len(ids) == 0 {
		all, err := s.store.Players(ctx)
		if err != nil {
			return nil, err
		}
		players = all
	} else {
		players = make([]model.Player, 0, len(ids))
		for _, id := range ids {
			p, err := s.store.Player(ctx, id)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
	}

	ranks := make(map[string]int, len(captainChoices))
	for i, id := range captainChoices {
		if i >= 3 {
			break
		}
		ranks[id] = i + 1
	}

	pool := make([]model.Candidate, 0, len(players))
	for _, p := range players {
		snap, err := s.snapshot(ctx, p.ID, season)
		if err != nil {
			return nil, err
		}
		if snap.CurrentForm == "" {
			recs, err := s.store.Performances(ctx, p.ID, s.lookback)
			if err != nil {
				return nil, err
			}
			if form, _, ok := rating.ClassifyForm(recs, s.lookback); ok {
				snap.CurrentForm = form
			}
		}
		pool = append(pool, model.Candidate{Player: p, Snapshot: snap, CaptainChoiceRank: ranks[p.ID]})
	}
	return pool, nil
}

func (s *Service) snapshot(ctx context.Context, playerID, season string) (model.SeasonSnapshot, error) {
	snap, err := s.store.Snapshot(ctx, playerID, season)
	if errors.Is(err, repository.ErrNotFound) {
		return model.SeasonSnapshot{PlayerID: playerID, Season: season}, nil
	}
	return snap, err
}

// QuickSplit divides the pool with the bucketed snake draft.
func (s *Service) QuickSplit(ctx context.Context, pool []model.Candidate) (model.Split, error) {
	return s.split(ctx, model.SplitQuick, pool, s.alloc.QuickSplit)
}

// WeightedSplit divides the pool with tier seeding and greedy balancing.
func (s *Service) WeightedSplit(ctx context.Context, pool []model.Candidate) (model.Split, error) {
	return s.split(ctx, model.SplitWeighted, pool, s.alloc.WeightedBalancedSplit)
}

func (s *Service) split(ctx context.Context, method string, pool []model.Candidate, fn func(context.Context, []model.Candidate) (model.Split, error)) (model.Split, error) {
	if err := s.checkPool(pool); err != nil {
		return model.Split{}, err
	}
	op := "split_" + method
	start := time.Now()
	out, err := fn(ctx, pool)
	metrics.RecordSelectionLatency(op, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordErrorByComponent("selection", "invalid_input")
		return model.Split{}, err
	}
	metrics.RecordComposition(op, model.SourceDeterministic, len(out.Warnings))
	return out, nil
}

// PreviewRatings computes the changes supplied performances would cause,
// without applying or consuming anything.
func (s *Service) PreviewRatings(ctx context.Context, p model.Player, records []model.PerformanceRecord, lookback int) (rating.Result, error) {
	if err := model.Validate(p); err != nil {
		return rating.Result{}, err
	}
	return s.blender.Window(lookback).Preview(ctx, p, records), nil
}

// PreviewPlayer previews the stored player against stored performances.
func (s *Service) PreviewPlayer(ctx context.Context, playerID string, lookback int) (rating.Result, error) {
	b := s.blender.Window(lookback)
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return rating.Result{}, err
	}
	recs, err := s.store.Performances(ctx, playerID, b.Lookback())
	if err != nil {
		return rating.Result{}, err
	}
	return b.Preview(ctx, p, recs), nil
}

func (s *Service) playerLock(playerID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playerID))
	return &s.playerLocks[h.Sum32()%playerLockStripes]
}

// RecalculatePlayer blends the player's recent performances into their
// ratings, applies the changes and appends them to the ledger. Calls for the
// same player are serialized, so each one reads the ratings the previous
// one applied.
func (s *Service) RecalculatePlayer(ctx context.Context, playerID string, lookback int) (rating.Result, error) {
	lock := s.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	b := s.blender.Window(lookback)
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return rating.Result{}, err
	}
	recs, err := s.store.Performances(ctx, playerID, b.Lookback())
	if err != nil {
		return rating.Result{}, err
	}

	res := b.Blend(ctx, p, recs)
	if res.Excluded {
		metrics.RecordRatingExcluded()
		s.logger.Debug(ctx, "player excluded from auto rating",
			logger.String("player_id", playerID),
			logger.String("reason", res.ExclusionReason),
		)
		return res, nil
	}
	if len(res.Changes) == 0 {
		return res, nil
	}

	if _, err := s.store.ApplyRatingChanges(ctx, playerID, res.Changes); err != nil {
		b.Release(ctx, res.Changes)
		if errors.Is(err, repository.ErrStaleRating) {
			metrics.RecordRatingConflict()
		}
		return res, fmt.Errorf("apply ratings for %s: %w", playerID, err)
	}
	for _, c := range res.Changes {
		metrics.RecordRatingChange(string(c.Discipline), c.Delta)
	}
	if err := s.ledger.Append(ctx, res.Changes...); err != nil {
		metrics.RecordErrorByComponent("ledger", "append")
		return res, fmt.Errorf("ratings applied for %s but not logged: %w", playerID, err)
	}

	s.logger.Info(ctx, "ratings updated",
		logger.String("player_id", playerID),
		logger.Int("changes", len(res.Changes)),
		logger.String("form", string(res.Form)),
	)
	return res, nil
}

// RecalculateAll recalculates every stored player, at most workerCount at a
// time. Per-player failures are joined; the other players still run.
func (s *Service) RecalculateAll(ctx context.Context, lookback int) ([]rating.Result, error) {
	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]rating.Result, len(players))
	failures := make([]error, len(players))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i, p := range players {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], failures[i] = s.RecalculatePlayer(gctx, p.ID, lookback)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, errors.Join(failures...)
}

// EnqueueRatingJobs queues recalculation jobs for the worker pool. Jobs
// without an id get one; ids already seen are skipped and counted as
// duplicates. On backpressure the jobs accepted so far are returned with
// the queue error.
func (s *Service) EnqueueRatingJobs(ctx context.Context, jobs []model.RatingJob) ([]model.RatingJob, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, 0, ErrNotStarted
	}

	for _, j := range jobs {
		if j.PlayerID == "" {
			return nil, 0, &model.InputError{Field: "player_id", Reason: "must not be empty"}
		}
	}

	accepted := make([]model.RatingJob, 0, len(jobs))
	duplicates := 0
	for _, j := range jobs {
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		if s.jobIDs.SeenAndRecord(ctx, j.ID) {
			duplicates++
			metrics.RecordJobDuplicate()
			continue
		}
		j.Submitted = time.Now()
		if err := s.queue.Enqueue(ctx, j); err != nil {
			s.jobIDs.Unrecord(ctx, j.ID)
			return accepted, duplicates, err
		}
		accepted = append(accepted, j)
	}
	return accepted, duplicates, nil
}

// RecordPerformance stores one match record for a known player.
func (s *Service) RecordPerformance(ctx context.Context, r model.PerformanceRecord) error {
	if _, err := s.store.Player(ctx, r.PlayerID); err != nil {
		return err
	}
	return s.store.AddPerformance(ctx, r)
}

// Opportunity reports the player's play-time status for a season. A player
// without a snapshot reports as new.
func (s *Service) Opportunity(ctx context.Context, playerID, season string) (opportunity.Report, error) {
	if _, err := s.store.Player(ctx, playerID); err != nil {
		return opportunity.Report{}, err
	}
	snap, err := s.snapshot(ctx, playerID, season)
	if err != nil {
		return opportunity.Report{}, err
	}
	return opportunity.Evaluate(snap, s.opportunityTarget), nil
}

// RatingHistory lists applied changes in order; an empty id lists all.
func (s *Service) RatingHistory(ctx context.Context, playerID string) []model.RatingChange {
	return s.ledger.List(ctx, playerID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	players := s.store.Count(ctx)
	stats := map[string]any{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"players":       players,
		"ratingChanges": s.ledger.Len(),
		"consumedKeys":  s.tracker.Size(),
		"squadSize":     s.squadSize,
	}
	metrics.UpdateRosterPlayers(players)

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		metrics.UpdateQueue(queueLen, s.queue.Capacity())
		metrics.UpdateWorkerCount(s.pool.Size())
	}
	return stats
}
