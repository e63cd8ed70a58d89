package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wanderplan/compass/internal/engine"
	"github.com/wanderplan/compass/internal/events"
	"github.com/wanderplan/compass/internal/metrics"
	"github.com/wanderplan/compass/internal/store"
)

type RecommendationsHandler struct {
	store  store.Store
	loader *engine.SettingsLoader
	ranker *engine.Ranker
	events events.Client
	logger *slog.Logger
}

func NewRecommendationsHandler(s store.Store, loader *engine.SettingsLoader, ranker *engine.Ranker, ev events.Client, logger *slog.Logger) *RecommendationsHandler {
	return &RecommendationsHandler{store: s, loader: loader, ranker: ranker, events: ev, logger: logger}
}

type RecommendationRequest struct {
	Category     string             `json:"category"`
	TotalBudget  float64            `json:"total_budget"`
	GroupSize    int                `json:"group_size"`
	Days         int                `json:"days"`
	StartDate    string             `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      string             `json:"end_date,omitempty"`
	Preferences  []string           `json:"preferences,omitempty"`
	Anchor       engine.Coordinates `json:"anchor"`
	CurrentSpend float64            `json:"current_spend,omitempty"`
}

type RecommendationResponse struct {
	Category string               `json:"category"`
	Bucket   float64              `json:"bucket"`
	Results  []engine.RankedVenue `json:"results"`
}

// Rank handles POST /api/v1/recommendations.
//
// A failed candidate fetch is not an error to the caller: it degrades to an
// empty ranked list, logged and counted here.
func (h *RecommendationsHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := engine.Category(req.Category)
	if !engine.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "category must be hotel, restaurant or activity")
		return
	}
	if req.GroupSize < 1 || req.Days < 1 {
		writeError(w, http.StatusBadRequest, "group_size and days must be at least 1")
		return
	}

	params := engine.TripParams{
		TotalBudget: req.TotalBudget,
		GroupSize:   req.GroupSize,
		Days:        req.Days,
		Preferences: req.Preferences,
		Anchor:      req.Anchor,
	}
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		params.StartDate = t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		params.EndDate = t
	}

	start := time.Now()
	settings := h.loader.Load(r.Context())

	candidates, err := h.store.ListCandidates(r.Context(), category.VenueType())
	if err != nil {
		h.logger.Error("candidate fetch failed", "category", req.Category, "error", err)
		metrics.CandidateFetchFailures.WithLabelValues(req.Category).Inc()
		candidates = nil
	}

	ranked := h.ranker.Rank(settings, params, category, req.CurrentSpend, candidates)

	excluded := 0
	for _, c := range candidates {
		if c.Latitude == nil || c.Longitude == nil {
			excluded++
		}
	}

	metrics.RecommendationsServed.WithLabelValues(req.Category).Inc()
	metrics.CandidatesEvaluated.WithLabelValues(req.Category).Add(float64(len(candidates) - excluded))
	metrics.CandidatesExcluded.WithLabelValues(req.Category).Add(float64(excluded))
	metrics.RankingDuration.WithLabelValues(req.Category).Observe(time.Since(start).Seconds())

	evt := events.RecommendationServedEvent{
		Category:       req.Category,
		CandidateCount: len(candidates),
		ResultCount:    len(ranked),
		DurationMs:     time.Since(start).Milliseconds(),
	}
	if len(ranked) > 0 {
		evt.TopVenueID = ranked[0].Venue.ID.String()
		evt.TopScore = ranked[0].Score
	}
	events.PublishBestEffort(h.events, h.logger, events.SubjectRecoServed(req.Category), evt)

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Category: req.Category,
		Bucket:   engine.AllocateBucket(settings, req.TotalBudget, category, req.CurrentSpend),
		Results:  ranked,
	})
}
