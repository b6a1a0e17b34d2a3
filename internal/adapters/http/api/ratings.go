package api

import (
	"errors"
	"net/http"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/rating"
)

type previewRequest struct {
	PlayerID     string                    `json:"player_id,omitempty"`
	Player       *model.Player             `json:"player,omitempty"`
	Performances []model.PerformanceRecord `json:"performances,omitempty"`
	Lookback     int                       `json:"lookback,omitempty"`
}

type recalculateRequest struct {
	// PlayerID empty recalculates every player.
	PlayerID string `json:"player_id,omitempty"`
	Lookback int    `json:"lookback,omitempty"`
}

type recalculateResponse struct {
	Results []rating.Result `json:"results"`
	Changes int             `json:"changes"`
}

type jobsRequest struct {
	Jobs []model.RatingJob `json:"jobs"`
}

type jobsResponse struct {
	Status     string            `json:"status"`
	Accepted   []model.RatingJob `json:"accepted"`
	Duplicates int               `json:"duplicates"`
}

type changesResponse struct {
	Changes []model.RatingChange `json:"changes"`
}

// RatingsHandler handles rating previews, recalculation and history.
type RatingsHandler struct {
	deps RatingDependencies
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(deps RatingDependencies) *RatingsHandler {
	return &RatingsHandler{deps: deps}
}

// HandlePreview handles POST /ratings/preview. A supplied player is blended
// against the supplied performances; a player_id alone uses stored data.
func (h *RatingsHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.preview_ratings"
	var req previewRequest
	if err := decode(w, r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var (
		res rating.Result
		err error
	)
	switch {
	case req.Player != nil:
		res, err = h.deps.PreviewRatings(r.Context(), *req.Player, req.Performances, req.Lookback)
	case req.PlayerID != "":
		res, err = h.deps.PreviewPlayer(r.Context(), req.PlayerID, req.Lookback)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("player or player_id is required")))
		return
	}
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleRecalculate handles POST /ratings/recalculate.
func (h *RatingsHandler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.recalculate_ratings"
	var req recalculateRequest
	if err := decode(w, r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if req.PlayerID != "" {
		res, err := h.deps.RecalculatePlayer(r.Context(), req.PlayerID, req.Lookback)
		if err != nil {
			fail(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, recalculateResponse{Results: []rating.Result{res}, Changes: len(res.Changes)})
		return
	}

	results, err := h.deps.RecalculateAll(r.Context(), req.Lookback)
	if err != nil {
		fail(w, op, err)
		return
	}
	changes := 0
	for _, res := range results {
		changes += len(res.Changes)
	}
	writeJSON(w, http.StatusOK, recalculateResponse{Results: results, Changes: changes})
}

// HandleJobs handles POST /ratings/jobs.
func (h *RatingsHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	const op = "api.enqueue_rating_jobs"
	var req jobsRequest
	if err := decode(w, r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if len(req.Jobs) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("no jobs")))
		return
	}

	accepted, duplicates, err := h.deps.EnqueueRatingJobs(r.Context(), req.Jobs)
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, jobsResponse{Status: "accepted", Accepted: accepted, Duplicates: duplicates})
}

// HandleChanges handles GET /ratings/changes?player_id=.
func (h *RatingsHandler) HandleChanges(w http.ResponseWriter, r *http.Request) {
	changes := h.deps.RatingHistory(r.Context(), r.URL.Query().Get("player_id"))
	writeJSON(w, http.StatusOK, changesResponse{Changes: changes})
}
