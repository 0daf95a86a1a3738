package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Champion/internal/store"
)

type RankingsHandler struct {
	store store.Store
}

func NewRankingsHandler(s store.Store) *RankingsHandler {
	return &RankingsHandler{store: s}
}

func (h *RankingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return
	}

	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ranking run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}
