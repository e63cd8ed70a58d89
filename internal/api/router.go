package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanderplan/compass/internal/catalog"
	"github.com/wanderplan/compass/internal/config"
	"github.com/wanderplan/compass/internal/engine"
	"github.com/wanderplan/compass/internal/events"
	"github.com/wanderplan/compass/internal/store"
)

func NewRouter(s store.Store, ev events.Client, cat catalog.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.API.RateLimitPerMinute))

	loader := engine.NewSettingsLoader(s, logger)
	ranker := engine.NewRanker(logger)

	reco := NewRecommendationsHandler(s, loader, ranker, ev, logger)
	venues := NewVenuesHandler(s, ev, cat, logger)
	settings := NewSettingsHandler(s, ev, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendations", reco.Rank)

		r.Post("/venues", venues.Create)
		r.Get("/venues", venues.List)
		r.Get("/venues/{id}", venues.Get)
		r.Patch("/venues/{id}", venues.Update)
		r.Delete("/venues/{id}", venues.Delete)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/admin/settings", settings.Get)
			r.Put("/admin/settings", settings.Put)
			r.Patch("/admin/settings", settings.Patch)
			r.Post("/admin/venues/import", venues.Import)
			r.Get("/admin/stats", venues.Stats)
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
