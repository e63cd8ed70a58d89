package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderplan/compass/internal/catalog"
	"github.com/wanderplan/compass/internal/events"
	"github.com/wanderplan/compass/internal/store"
)

type VenuesHandler struct {
	store   store.Store
	events  events.Client
	catalog catalog.Client
	logger  *slog.Logger
}

func NewVenuesHandler(s store.Store, ev events.Client, cat catalog.Client, logger *slog.Logger) *VenuesHandler {
	return &VenuesHandler{store: s, events: ev, catalog: cat, logger: logger}
}

type CreateVenueRequest struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	City       string   `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

func (h *VenuesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if !store.ValidVenueType(store.VenueType(req.Type)) {
		writeError(w, http.StatusBadRequest, "type must be hotel, restaurant or activity")
		return
	}
	if req.PriceLevel != nil && (*req.PriceLevel < 1 || *req.PriceLevel > 4) {
		writeError(w, http.StatusBadRequest, "price_level must be 1-4")
		return
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		writeError(w, http.StatusBadRequest, "rating must be 0-5")
		return
	}

	v := &store.Venue{
		Name:       req.Name,
		Type:       store.VenueType(req.Type),
		City:       req.City,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PriceLevel: req.PriceLevel,
		Tags:       req.Tags,
		Rating:     req.Rating,
		Source:     "api",
	}
	if err := h.store.CreateVenue(r.Context(), v); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	events.PublishBestEffort(h.events, h.logger, events.SubjectVenueCreated(v.ID.String()), events.VenueEvent{
		VenueID: v.ID.String(), Name: v.Name, Type: string(v.Type), City: v.City,
	})
	writeJSON(w, http.StatusCreated, v)
}

func (h *VenuesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	v, err := h.store.GetVenue(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VenuesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.VenueFilter{
		City: q.Get("city"),
	}
	if t := q.Get("type"); t != "" {
		vt := store.VenueType(t)
		if !store.ValidVenueType(vt) {
			writeError(w, http.StatusBadRequest, "invalid type filter")
			return
		}
		filter.Type = &vt
	}
	if mr := q.Get("min_rating"); mr != "" {
		v, err := strconv.ParseFloat(mr, 64)
		if err != nil || v < 0 || v > 5 {
			writeError(w, http.StatusBadRequest, "min_rating must be 0-5")
			return
		}
		filter.MinRating = &v
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if o := q.Get("offset"); o != "" {
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	venues, err := h.store.ListVenues(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if venues == nil {
		venues = []*store.Venue{}
	}
	writeJSON(w, http.StatusOK, venues)
}

type UpdateVenueRequest struct {
	Name       *string  `json:"name,omitempty"`
	City       *string  `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

func (h *VenuesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req UpdateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.store.GetVenue(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, "venue not found")
		return
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.City != nil {
		v.City = *req.City
	}
	if req.Latitude != nil {
		v.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		v.Longitude = req.Longitude
	}
	if req.PriceLevel != nil {
		if *req.PriceLevel < 1 || *req.PriceLevel > 4 {
			writeError(w, http.StatusBadRequest, "price_level must be 1-4")
			return
		}
		v.PriceLevel = req.PriceLevel
	}
	if req.Tags != nil {
		v.Tags = req.Tags
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			writeError(w, http.StatusBadRequest, "rating must be 0-5")
			return
		}
		v.Rating = req.Rating
	}

	if err := h.store.UpdateVenue(r.Context(), v); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	events.PublishBestEffort(h.events, h.logger, events.SubjectVenueUpdated(v.ID.String()), events.VenueEvent{
		VenueID: v.ID.String(), Name: v.Name, Type: string(v.Type), City: v.City,
	})
	writeJSON(w, http.StatusOK, v)
}

func (h *VenuesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteVenue(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	events.PublishBestEffort(h.events, h.logger, events.SubjectVenueDeleted(id.String()), events.VenueEvent{VenueID: id.String()})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Import handles POST /api/v1/admin/venues/import?city=X: pulls listings
// from the external catalog feed and stores them as venues. Listings the
// store rejects are skipped, not fatal.
func (h *VenuesHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "no catalog feed configured")
		return
	}
	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "city required")
		return
	}

	listings, err := h.catalog.FetchListings(r.Context(), city)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	imported, skipped := 0, 0
	for _, l := range listings {
		if l.Name == "" || !store.ValidVenueType(store.VenueType(l.Type)) {
			skipped++
			continue
		}
		v := &store.Venue{
			Name:       l.Name,
			Type:       store.VenueType(l.Type),
			City:       l.City,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
			PriceLevel: l.PriceLevel,
			Tags:       l.Tags,
			Rating:     l.Rating,
			Source:     "catalog",
		}
		if err := h.store.CreateVenue(r.Context(), v); err != nil {
			h.logger.Warn("import skipped listing", "name", l.Name, "error", err)
			skipped++
			continue
		}
		imported++
	}

	events.PublishBestEffort(h.events, h.logger, events.SubjectVenuesImported(city), events.VenuesImportedEvent{
		City: city, Imported: imported, Skipped: skipped, Source: "catalog",
	})
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported, "skipped": skipped})
}

func (h *VenuesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
