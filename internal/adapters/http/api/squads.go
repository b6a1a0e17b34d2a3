package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/selection"
)

// selectRequest carries either an explicit pool or a roster selection.
type selectRequest struct {
	Pool   []model.Candidate        `json:"pool"`
	Target int                      `json:"target,omitempty"`
	Mode   string                   `json:"mode,omitempty"`
	Match  *model.MatchContext      `json:"match,omitempty"`
	Roster *selection.RosterRequest `json:"roster,omitempty"`
}

type splitRequest struct {
	Pool   []model.Candidate        `json:"pool"`
	Roster *selection.RosterRequest `json:"roster,omitempty"`
}

// SquadsHandler handles squad selection and splits.
type SquadsHandler struct {
	deps SquadDependencies
}

// NewSquadsHandler creates a new squads handler.
func NewSquadsHandler(deps SquadDependencies) *SquadsHandler {
	return &SquadsHandler{deps: deps}
}

// HandleSelect handles POST /squads/select.
func (h *SquadsHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_squad"
	var req selectRequest
	if err := decode(w, r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	mode, ok := model.ParseMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unknown mode %q", req.Mode)))
		return
	}
	if req.Target < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("target must not be negative")))
		return
	}

	var (
		comp model.TeamComposition
		err  error
	)
	if req.Roster != nil {
		roster := *req.Roster
		roster.Mode, roster.Target, roster.Match = mode, req.Target, req.Match
		comp, err = h.deps.SelectSquadFromRoster(r.Context(), roster)
	} else {
		if len(req.Pool) == 0 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("pool or roster is required")))
			return
		}
		comp, err = h.deps.SelectSquad(r.Context(), selection.Request{Pool: req.Pool, Target: req.Target, Mode: mode, Match: req.Match})
	}
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

// HandleSplit handles POST /squads/split?method=quick|weighted.
func (h *SquadsHandler) HandleSplit(w http.ResponseWriter, r *http.Request) {
	const op = "api.split"
	method := r.URL.Query().Get("method")
	if method == "" {
		method = model.SplitQuick
	}
	if method != model.SplitQuick && method != model.SplitWeighted {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unknown method %q", method)))
		return
	}

	var req splitRequest
	if err := decode(w, r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	pool := req.Pool
	if req.Roster != nil {
		var err error
		pool, err = h.deps.Candidates(r.Context(), req.Roster.PlayerIDs, req.Roster.Season, req.Roster.CaptainChoices)
		if err != nil {
			fail(w, op, err)
			return
		}
	}

	var (
		out model.Split
		err error
	)
	if method == model.SplitWeighted {
		out, err = h.deps.WeightedSplit(r.Context(), pool)
	} else {
		out, err = h.deps.QuickSplit(r.Context(), pool)
	}
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
