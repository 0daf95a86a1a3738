package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Champion/internal/broker"
	"github.com/MikeSquared-Agency/Champion/internal/store"
)

func NewRouter(s store.Store, b *broker.Broker, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	rank := NewRankHandler(b)
	rosters := NewRostersHandler(s, b)
	rankings := NewRankingsHandler(s)
	admin := NewAdminHandler(s, b)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rank", rank.Rank)
		r.Post("/contenders", rank.Contenders)

		r.Post("/rosters", rosters.Create)
		r.Get("/rosters", rosters.List)
		r.Get("/rosters/{id}", rosters.Get)
		r.Put("/rosters/{id}", rosters.Update)
		r.Post("/rosters/{id}/rank", rosters.Rank)
		r.Get("/rosters/{id}/explain", rosters.Explain)
		r.Get("/rosters/{id}/contenders", rosters.Contenders)
		r.Get("/rosters/{id}/rankings", rosters.Rankings)

		r.Get("/rankings/{id}", rankings.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Delete("/rosters/{id}", admin.DeleteRoster)
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
