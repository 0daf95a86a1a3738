package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Champion/internal/broker"
	"github.com/MikeSquared-Agency/Champion/internal/store"
)

type AdminHandler struct {
	store  store.Store
	broker *broker.Broker
}

func NewAdminHandler(s store.Store, b *broker.Broker) *AdminHandler {
	return &AdminHandler{store: s, broker: b}
}

type StatsResponse struct {
	store.Stats
	TiePolicy string `json:"tie_policy"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		Stats:     *stats,
		TiePolicy: string(h.broker.Ranker().Policy()),
	})
}

// DeleteRoster removes a roster together with its recorded runs.
func (h *AdminHandler) DeleteRoster(w http.ResponseWriter, r *http.Request) {
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
	if err := h.store.DeleteRoster(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.broker.RosterDeleted(id)
	w.WriteHeader(http.StatusNoContent)
}
