package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wanderplan/compass/internal/config"
	"github.com/wanderplan/compass/internal/engine"
	"github.com/wanderplan/compass/internal/metrics"
	"github.com/wanderplan/compass/internal/store"
)

// Mocks
type mockStore struct {
	venues      map[uuid.UUID]*store.Venue
	order       []uuid.UUID
	settings    *store.EngineSettings
	failFetch   bool
	failGetSet  bool
	upsertCalls int
}

func newMockStore() *mockStore {
	return &mockStore{venues: make(map[uuid.UUID]*store.Venue)}
}

func (m *mockStore) CreateVenue(_ context.Context, v *store.Venue) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()
	m.venues[v.ID] = v
	m.order = append(m.order, v.ID)
	return nil
}
func (m *mockStore) GetVenue(_ context.Context, id uuid.UUID) (*store.Venue, error) {
	return m.venues[id], nil
}
func (m *mockStore) ListVenues(_ context.Context, f store.VenueFilter) ([]*store.Venue, error) {
	var out []*store.Venue
	for _, id := range m.order {
		v, ok := m.venues[id]
		if !ok {
			continue
		}
		if f.Type != nil && v.Type != *f.Type {
			continue
		}
		if f.City != "" && v.City != f.City {
			continue
		}
		if f.MinRating != nil && (v.Rating == nil || *v.Rating < *f.MinRating) {
			continue
		}
		out = append(out, v)
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			out = nil
		} else {
			out = out[f.Offset:]
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
func (m *mockStore) UpdateVenue(_ context.Context, v *store.Venue) error {
	m.venues[v.ID] = v
	return nil
}
func (m *mockStore) DeleteVenue(_ context.Context, id uuid.UUID) error {
	delete(m.venues, id)
	return nil
}
func (m *mockStore) ListCandidates(_ context.Context, t store.VenueType) ([]*store.Venue, error) {
	if m.failFetch {
		return nil, errors.New("database unreachable")
	}
	var out []*store.Venue
	for _, id := range m.order {
		v := m.venues[id]
		if v != nil && v.Type == t {
			out = append(out, v)
		}
	}
	return out, nil
}
func (m *mockStore) GetEngineSettings(_ context.Context) (*store.EngineSettings, error) {
	if m.failGetSet {
		return nil, errors.New("database unreachable")
	}
	return m.settings, nil
}
func (m *mockStore) UpsertEngineSettings(_ context.Context, s *store.EngineSettings) error {
	s.UpdatedAt = time.Now()
	m.settings = s
	m.upsertCalls++
	return nil
}
func (m *mockStore) GetStats(_ context.Context) (*store.VenueStats, error) {
	return &store.VenueStats{TotalVenues: len(m.venues)}, nil
}
func (m *mockStore) Close() error { return nil }

type mockEvents struct {
	published []string
}

func (m *mockEvents) Publish(subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}
func (m *mockEvents) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (m *mockEvents) Close()                                           {}

func testRouter(s store.Store, adminToken string) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server: config.ServerConfig{AdminToken: adminToken},
		API:    config.APIConfig{RateLimitPerMinute: 1000},
	}
	return NewRouter(s, &mockEvents{}, nil, cfg, logger)
}

func seedHotel(t *testing.T, m *mockStore, name string, lat, lng float64, rating float64) *store.Venue {
	t.Helper()
	level := 2
	v := &store.Venue{
		Name: name, Type: store.VenueHotel,
		Latitude: &lat, Longitude: &lng,
		PriceLevel: &level, Rating: &rating,
	}
	if err := m.CreateVenue(context.Background(), v); err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	return v
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRecommendationsEndpoint(t *testing.T) {
	m := newMockStore()
	seedHotel(t, m, "near", 45.0, 25.0, 4.5)
	seedHotel(t, m, "far", 46.0, 25.0, 4.5)
	router := testRouter(m, "")

	rec := doJSON(t, router, "POST", "/api/v1/recommendations", map[string]interface{}{
		"category":     "hotel",
		"total_budget": 1000,
		"group_size":   2,
		"days":         2,
		"anchor":       map[string]float64{"lat": 45.0, "lng": 25.0},
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Bucket != 400 {
		t.Errorf("bucket = %f, want 400", resp.Bucket)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Venue.Name != "near" {
		t.Errorf("expected 'near' ranked first, got %s", resp.Results[0].Venue.Name)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Errorf("results not descending: %f <= %f", resp.Results[0].Score, resp.Results[1].Score)
	}
}

func TestRecommendationsFetchFailureReturnsEmptyList(t *testing.T) {
	m := newMockStore()
	m.failFetch = true
	router := testRouter(m, "")

	rec := doJSON(t, router, "POST", "/api/v1/recommendations", map[string]interface{}{
		"category":     "restaurant",
		"total_budget": 500,
		"group_size":   2,
		"days":         1,
		"anchor":       map[string]float64{"lat": 45.0, "lng": 25.0},
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on fetch failure, got %d", rec.Code)
	}
	var resp RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(resp.Results))
	}
}

func TestRecommendationsUsesDefaultsWhenSettingsUnreachable(t *testing.T) {
	m := newMockStore()
	m.failGetSet = true
	seedHotel(t, m, "anchor hotel", 45.0, 25.0, 5)
	router := testRouter(m, "")

	rec := doJSON(t, router, "POST", "/api/v1/recommendations", map[string]interface{}{
		"category":     "hotel",
		"total_budget": 1000,
		"group_size":   2,
		"days":         2,
		"anchor":       map[string]float64{"lat": 45.0, "lng": 25.0},
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// default 0.4 hotel split
	if resp.Bucket != 400 {
		t.Errorf("bucket = %f, want default-derived 400", resp.Bucket)
	}
}

func TestRecommendationsValidation(t *testing.T) {
	router := testRouter(newMockStore(), "")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"bad category", map[string]interface{}{"category": "museum", "group_size": 1, "days": 1}},
		{"zero group size", map[string]interface{}{"category": "hotel", "group_size": 0, "days": 1}},
		{"zero days", map[string]interface{}{"category": "hotel", "group_size": 2, "days": 0}},
		{"bad start date", map[string]interface{}{"category": "hotel", "group_size": 2, "days": 1, "start_date": "not-a-date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, "POST", "/api/v1/recommendations", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestVenueCreateAndGet(t *testing.T) {
	m := newMockStore()
	router := testRouter(m, "")

	rec := doJSON(t, router, "POST", "/api/v1/venues", map[string]interface{}{
		"name":        "Old Town Bistro",
		"type":        "restaurant",
		"city":        "Brasov",
		"latitude":    45.64,
		"longitude":   25.59,
		"price_level": 3,
		"tags":        []string{"romanian", "wine"},
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created store.Venue
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = doJSON(t, router, "GET", "/api/v1/venues/"+created.ID.String(), nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestVenueCreateRejectsBadInput(t *testing.T) {
	router := testRouter(newMockStore(), "")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"type": "hotel"}},
		{"bad type", map[string]interface{}{"name": "x", "type": "cinema"}},
		{"price level out of range", map[string]interface{}{"name": "x", "type": "hotel", "price_level": 7}},
		{"rating out of range", map[string]interface{}{"name": "x", "type": "hotel", "rating": 9.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, "POST", "/api/v1/venues", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := testRouter(newMockStore(), "hunter2")

	rec := doJSON(t, router, "GET", "/api/v1/admin/settings", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/v1/admin/settings", nil, map[string]string{
		"Authorization": "Bearer hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", rec.Code)
	}
}

func TestVenueListFilters(t *testing.T) {
	m := newMockStore()
	seedHotel(t, m, "budget inn", 45.0, 25.0, 3.2)
	seedHotel(t, m, "mid hotel", 45.0, 25.0, 4.1)
	seedHotel(t, m, "grand palace", 45.0, 25.0, 4.8)
	router := testRouter(m, "")

	rec := doJSON(t, router, "GET", "/api/v1/venues?min_rating=4", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var venues []*store.Venue
	if err := json.Unmarshal(rec.Body.Bytes(), &venues); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("min_rating=4: expected 2 venues, got %d", len(venues))
	}
	for _, v := range venues {
		if v.Rating == nil || *v.Rating < 4 {
			t.Errorf("venue %q below min_rating", v.Name)
		}
	}

	rec = doJSON(t, router, "GET", "/api/v1/venues?min_rating=4&limit=1&offset=1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	venues = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &venues); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(venues) != 1 {
		t.Fatalf("limit=1&offset=1: expected 1 venue, got %d", len(venues))
	}
	if venues[0].Name != "grand palace" {
		t.Errorf("expected 'grand palace' after offset, got %q", venues[0].Name)
	}
}

func TestVenueListRejectsBadFilters(t *testing.T) {
	router := testRouter(newMockStore(), "")

	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric min_rating", "min_rating=five"},
		{"min_rating above 5", "min_rating=7"},
		{"zero limit", "limit=0"},
		{"non-numeric limit", "limit=ten"},
		{"negative offset", "offset=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, "GET", "/api/v1/venues?"+tt.query, nil, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestRecommendationsCountsUngeocodedCandidates(t *testing.T) {
	m := newMockStore()
	seedHotel(t, m, "geocoded", 45.0, 25.0, 4.5)
	level := 2
	rating := 4.9
	err := m.CreateVenue(context.Background(), &store.Venue{
		Name: "ungeocoded", Type: store.VenueHotel,
		PriceLevel: &level, Rating: &rating,
	})
	if err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	router := testRouter(m, "")

	evalBefore := testutil.ToFloat64(metrics.CandidatesEvaluated.WithLabelValues("hotel"))
	exclBefore := testutil.ToFloat64(metrics.CandidatesExcluded.WithLabelValues("hotel"))

	rec := doJSON(t, router, "POST", "/api/v1/recommendations", map[string]interface{}{
		"category":     "hotel",
		"total_budget": 1000,
		"group_size":   2,
		"days":         2,
		"anchor":       map[string]float64{"lat": 45.0, "lng": 25.0},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if resp.Results[0].Venue.Name != "geocoded" {
		t.Errorf("expected 'geocoded' venue, got %q", resp.Results[0].Venue.Name)
	}

	if got := testutil.ToFloat64(metrics.CandidatesEvaluated.WithLabelValues("hotel")) - evalBefore; got != 1 {
		t.Errorf("candidates evaluated delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CandidatesExcluded.WithLabelValues("hotel")) - exclBefore; got != 1 {
		t.Errorf("candidates excluded delta = %f, want 1", got)
	}
}

func TestRecommendationsTruncates(t *testing.T) {
	m := newMockStore()
	for i := 0; i < engine.MaxResults+5; i++ {
		seedHotel(t, m, "hotel", 45.0, 25.0, 4)
	}
	router := testRouter(m, "")

	rec := doJSON(t, router, "POST", "/api/v1/recommendations", map[string]interface{}{
		"category":     "hotel",
		"total_budget": 1000,
		"group_size":   2,
		"days":         2,
		"anchor":       map[string]float64{"lat": 45.0, "lng": 25.0},
	}, nil)

	var resp RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != engine.MaxResults {
		t.Errorf("expected %d results, got %d", engine.MaxResults, len(resp.Results))
	}
}
