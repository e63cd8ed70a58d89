package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wanderplan/compass/internal/engine"
	"github.com/wanderplan/compass/internal/events"
	"github.com/wanderplan/compass/internal/store"
)

// SettingsHandler is the admin tuning interface. It is the only writer of
// the engine-settings row; the sum invariants are enforced here before any
// value reaches the store.
type SettingsHandler struct {
	store  store.Store
	events events.Client
	logger *slog.Logger
}

func NewSettingsHandler(s store.Store, ev events.Client, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: s, events: ev, logger: logger}
}

// Get returns the stored record, or the hard-coded defaults when no record
// exists yet.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetEngineSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusOK, engine.DefaultSettings().Record())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type PutSettingsRequest struct {
	SplitRatioHotel    *float64 `json:"split_ratio_hotel"`
	SplitRatioFood     *float64 `json:"split_ratio_food"`
	SplitRatioActivity *float64 `json:"split_ratio_activity"`
	WeightPriceFit     *float64 `json:"weight_price_fit"`
	WeightDistance     *float64 `json:"weight_distance"`
	WeightAffinity     *float64 `json:"weight_affinity"`
	WeightRating       *float64 `json:"weight_rating"`
	PenaltyPerKm       *float64 `json:"penalty_per_km"`
}

func (req *PutSettingsRequest) complete() bool {
	return req.SplitRatioHotel != nil && req.SplitRatioFood != nil && req.SplitRatioActivity != nil &&
		req.WeightPriceFit != nil && req.WeightDistance != nil && req.WeightAffinity != nil &&
		req.WeightRating != nil && req.PenaltyPerKm != nil
}

// Put replaces the whole record. All eight fields are required; a record
// violating a sum invariant is rejected with the invariant and the
// computed sum in the error body.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req PutSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.complete() {
		writeError(w, http.StatusBadRequest, "all eight settings fields are required")
		return
	}

	s := engine.Settings{
		Splits: engine.SplitSet{
			Hotel:    *req.SplitRatioHotel,
			Food:     *req.SplitRatioFood,
			Activity: *req.SplitRatioActivity,
		},
		Weights: engine.WeightSet{
			PriceFit: *req.WeightPriceFit,
			Distance: *req.WeightDistance,
			Affinity: *req.WeightAffinity,
			Rating:   *req.WeightRating,
		},
		PenaltyPerKm: *req.PenaltyPerKm,
	}
	h.persist(w, r, s)
}

// Patch applies a partial update with slider semantics: fields present in
// the body are pinned, the untouched siblings in the same group are
// proportionally rescaled so the group sums to 1.0 again. The hard
// validation still runs afterwards, so a patch that pins more than the
// whole budget is rejected rather than silently absorbed.
func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PutSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.store.GetEngineSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	current := engine.DefaultSettings()
	if rec != nil {
		current = engine.SettingsFromRecord(rec)
	}

	splits := []float64{current.Splits.Hotel, current.Splits.Food, current.Splits.Activity}
	splitPins := []bool{req.SplitRatioHotel != nil, req.SplitRatioFood != nil, req.SplitRatioActivity != nil}
	applyPin(splits, 0, req.SplitRatioHotel)
	applyPin(splits, 1, req.SplitRatioFood)
	applyPin(splits, 2, req.SplitRatioActivity)
	if splitPins[0] || splitPins[1] || splitPins[2] {
		splits = engine.Rebalance(splits, splitPins)
	}

	weights := []float64{current.Weights.PriceFit, current.Weights.Distance, current.Weights.Affinity, current.Weights.Rating}
	weightPins := []bool{req.WeightPriceFit != nil, req.WeightDistance != nil, req.WeightAffinity != nil, req.WeightRating != nil}
	applyPin(weights, 0, req.WeightPriceFit)
	applyPin(weights, 1, req.WeightDistance)
	applyPin(weights, 2, req.WeightAffinity)
	applyPin(weights, 3, req.WeightRating)
	if weightPins[0] || weightPins[1] || weightPins[2] || weightPins[3] {
		weights = engine.Rebalance(weights, weightPins)
	}

	s := engine.Settings{
		Splits:       engine.SplitSet{Hotel: splits[0], Food: splits[1], Activity: splits[2]},
		Weights:      engine.WeightSet{PriceFit: weights[0], Distance: weights[1], Affinity: weights[2], Rating: weights[3]},
		PenaltyPerKm: current.PenaltyPerKm,
	}
	if req.PenaltyPerKm != nil {
		s.PenaltyPerKm = *req.PenaltyPerKm
	}
	h.persist(w, r, s)
}

func (h *SettingsHandler) persist(w http.ResponseWriter, r *http.Request, s engine.Settings) {
	if err := s.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rec := s.Record()
	rec.UpdatedBy = r.Header.Get("X-Admin-User")
	if err := h.store.UpsertEngineSettings(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	events.PublishBestEffort(h.events, h.logger, events.SubjectSettingsUpdated, events.SettingsUpdatedEvent{
		SplitRatioHotel:    rec.SplitRatioHotel,
		SplitRatioFood:     rec.SplitRatioFood,
		SplitRatioActivity: rec.SplitRatioActivity,
		WeightPriceFit:     rec.WeightPriceFit,
		WeightDistance:     rec.WeightDistance,
		WeightAffinity:     rec.WeightAffinity,
		WeightRating:       rec.WeightRating,
		PenaltyPerKm:       rec.PenaltyPerKm,
		UpdatedBy:          rec.UpdatedBy,
	})
	writeJSON(w, http.StatusOK, rec)
}

func applyPin(values []float64, i int, v *float64) {
	if v != nil {
		values[i] = *v
	}
}
