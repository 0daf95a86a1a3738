package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Champion/internal/broker"
	"github.com/MikeSquared-Agency/Champion/internal/ranking"
	"github.com/MikeSquared-Agency/Champion/internal/store"
)

type RankHandler struct {
	broker *broker.Broker
}

func NewRankHandler(b *broker.Broker) *RankHandler {
	return &RankHandler{broker: b}
}

type RankRequest struct {
	Competitors []CompetitorInput `json:"competitors" validate:"omitempty,dive"`
	Explain     bool              `json:"explain,omitempty"`
}

type RankResponse struct {
	Run   *store.RankingRun `json:"run"`
	Steps []ranking.Step    `json:"steps,omitempty"`
}

type ContendersRequest struct {
	Competitors []CompetitorInput `json:"competitors" validate:"omitempty,dive"`
}

type ContendersResponse struct {
	Contenders []ranking.Competitor `json:"contenders"`
}

// Rank ranks an inline competitor list and records the run.
func (h *RankHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	run, steps, err := h.broker.RankCompetitors(r.Context(), toCompetitors(req.Competitors), broker.SourceAPI)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := RankResponse{Run: run}
	if req.Explain {
		resp.Steps = steps
	}
	writeJSON(w, http.StatusOK, resp)
}

// Contenders returns the Pareto frontier of an inline list. Nothing is
// recorded.
func (h *RankHandler) Contenders(w http.ResponseWriter, r *http.Request) {
	var req ContendersRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	competitors := toCompetitors(req.Competitors)
	if err := h.broker.CheckSize(competitors); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contendersResponse(ranking.Contenders(competitors)))
}

func contendersResponse(frontier []ranking.Competitor) ContendersResponse {
	if frontier == nil {
		frontier = []ranking.Competitor{}
	}
	return ContendersResponse{Contenders: frontier}
}
