package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Champion/internal/broker"
	"github.com/MikeSquared-Agency/Champion/internal/ranking"
	"github.com/MikeSquared-Agency/Champion/internal/store"
)

type RostersHandler struct {
	store  store.Store
	broker *broker.Broker
}

func NewRostersHandler(s store.Store, b *broker.Broker) *RostersHandler {
	return &RostersHandler{store: s, broker: b}
}

type RosterRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Competitors []CompetitorInput `json:"competitors" validate:"omitempty,dive"`
}

type ExplainResponse struct {
	RosterID uuid.UUID      `json:"roster_id"`
	Result   ranking.Result `json:"result"`
	Steps    []ranking.Step `json:"steps"`
}

func (h *RostersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RosterRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	roster := &store.Roster{Name: req.Name, Competitors: toCompetitors(req.Competitors)}
	if err := h.broker.CheckSize(roster.Competitors); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateRoster(r.Context(), roster); err != nil {
		writeError(w, err)
		return
	}

	h.broker.RosterCreated(roster)
	writeJSON(w, http.StatusCreated, roster)
}

func (h *RostersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rosters, err := h.store.ListRosters(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if rosters == nil {
		rosters = []*store.Roster{}
	}
	writeJSON(w, http.StatusOK, rosters)
}

func (h *RostersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := rosterID(w, r)
	if !ok {
		return
	}
	roster, err := h.store.GetRoster(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if roster == nil {
		writeError(w, broker.ErrRosterNotFound)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// Update replaces a roster's name and competitor list.
func (h *RostersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := rosterID(w, r)
	if !ok {
		return
	}
	var req RosterRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	competitors := toCompetitors(req.Competitors)
	if err := h.broker.CheckSize(competitors); err != nil {
		writeError(w, err)
		return
	}

	roster, err := h.store.GetRoster(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if roster == nil {
		writeError(w, broker.ErrRosterNotFound)
		return
	}

	roster.Name = req.Name
	roster.Competitors = competitors
	if err := h.store.UpdateRoster(r.Context(), roster); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = broker.ErrRosterNotFound
		}
		writeError(w, err)
		return
	}

	h.broker.RosterUpdated(roster)
	writeJSON(w, http.StatusOK, roster)
}

// Rank ranks the stored roster and records the run. ?explain=true adds the
// per-competitor steps.
func (h *RostersHandler) Rank(w http.ResponseWriter, r *http.Request) {
	id, ok := rosterID(w, r)
	if !ok {
		return
	}
	run, steps, err := h.broker.RankRoster(r.Context(), id, broker.SourceAPI)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := RankResponse{Run: run}
	if r.URL.Query().Get("explain") == "true" {
		resp.Steps = steps
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RostersHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, ok := rosterID(w, r)
	if !ok {
		return
	}
	res, steps, err := h.broker.ExplainRoster(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if steps == nil {
		steps = []ranking.Step{}
	}
	writeJSON(w, http.StatusOK, ExplainResponse{RosterID: id, Result: res, Steps: steps})
}

func (h *RostersHandler) Contenders(w http.ResponseWriter, r *http.Request) {
	id, ok := rosterID(w, r)
	if !ok {
		return
	}
	frontier, err := h.broker.RosterContenders(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contendersResponse(frontier))
}

// Rankings lists the roster's recorded runs, newest first.
func (h *RostersHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	id, ok := rosterID(w, r)
	if !ok {
		return
	}
	roster, err := h.store.GetRoster(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if roster == nil {
		writeError(w, broker.ErrRosterNotFound)
		return
	}

	limit, offset := pagination(r)
	runs, err := h.store.ListRuns(r.Context(), store.RunFilter{RosterID: &id, Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*store.RankingRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func rosterID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid roster id"})
		return uuid.Nil, false
	}
	return id, true
}
