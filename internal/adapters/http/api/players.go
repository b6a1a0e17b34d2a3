package api

import (
	"net/http"

	"github.com/okian/squadcraft/internal/domain/model"
)

// PlayersHandler handles per-player reads and match records.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleOpportunity handles GET /players/{id}/opportunity?season=.
func (h *PlayersHandler) HandleOpportunity(w http.ResponseWriter, r *http.Request) {
	const op = "api.opportunity"
	rep, err := h.deps.Opportunity(r.Context(), r.PathValue("id"), r.URL.Query().Get("season"))
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleRecordPerformance handles POST /performances.
func (h *PlayersHandler) HandleRecordPerformance(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_performance"
	var rec model.PerformanceRecord
	if err := decode(w, r, op, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.RecordPerformance(r.Context(), rec); err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
