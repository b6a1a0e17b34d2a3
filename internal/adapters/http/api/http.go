// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/opportunity"
	"github.com/okian/squadcraft/internal/domain/rating"
	"github.com/okian/squadcraft/internal/domain/selection"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// SquadDependencies covers selection and splitting.
type SquadDependencies interface {
	SelectSquad(ctx context.Context, req selection.Request) (model.TeamComposition, error)
	SelectSquadFromRoster(ctx context.Context, req selection.RosterRequest) (model.TeamComposition, error)
	Candidates(ctx context.Context, ids []string, season string, captainChoices []string) ([]model.Candidate, error)
	QuickSplit(ctx context.Context, pool []model.Candidate) (model.Split, error)
	WeightedSplit(ctx context.Context, pool []model.Candidate) (model.Split, error)
}

// RatingDependencies covers the rating pipeline.
type RatingDependencies interface {
	PreviewRatings(ctx context.Context, p model.Player, records []model.PerformanceRecord, lookback int) (rating.Result, error)
	PreviewPlayer(ctx context.Context, playerID string, lookback int) (rating.Result, error)
	RecalculatePlayer(ctx context.Context, playerID string, lookback int) (rating.Result, error)
	RecalculateAll(ctx context.Context, lookback int) ([]rating.Result, error)
	EnqueueRatingJobs(ctx context.Context, jobs []model.RatingJob) ([]model.RatingJob, int, error)
	RatingHistory(ctx context.Context, playerID string) []model.RatingChange
}

// PlayerDependencies covers per-player reads and match records.
type PlayerDependencies interface {
	Opportunity(ctx context.Context, playerID, season string) (opportunity.Report, error)
	RecordPerformance(ctx context.Context, r model.PerformanceRecord) error
}

// Dependencies required by HTTP handlers.
type Dependencies interface {
	SquadDependencies
	RatingDependencies
	PlayerDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	squadsHandler  *SquadsHandler
	ratingsHandler *RatingsHandler
	playersHandler *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		squadsHandler:  NewSquadsHandler(deps),
		ratingsHandler: NewRatingsHandler(deps),
		playersHandler: NewPlayersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /squads/select", MetricsMiddleware(s.squadsHandler.HandleSelect, "squads_select"))
	mux.HandleFunc("POST /squads/split", MetricsMiddleware(s.squadsHandler.HandleSplit, "squads_split"))
	mux.HandleFunc("POST /ratings/preview", MetricsMiddleware(s.ratingsHandler.HandlePreview, "ratings_preview"))
	mux.HandleFunc("POST /ratings/recalculate", MetricsMiddleware(s.ratingsHandler.HandleRecalculate, "ratings_recalculate"))
	mux.HandleFunc("POST /ratings/jobs", MetricsMiddleware(s.ratingsHandler.HandleJobs, "ratings_jobs"))
	mux.HandleFunc("GET /ratings/changes", MetricsMiddleware(s.ratingsHandler.HandleChanges, "ratings_changes"))
	mux.HandleFunc("GET /players/{id}/opportunity", MetricsMiddleware(s.playersHandler.HandleOpportunity, "players_opportunity"))
	mux.HandleFunc("POST /performances", MetricsMiddleware(s.playersHandler.HandleRecordPerformance, "performances"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decode reads a JSON body into v. Failures are ErrBadRequest.
func decode(w http.ResponseWriter, r *http.Request, op string, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
