package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type VenueType string

const (
	VenueHotel      VenueType = "hotel"
	VenueRestaurant VenueType = "restaurant"
	VenueActivity   VenueType = "activity"
)

// ValidVenueType reports whether t is one of the three catalog types.
func ValidVenueType(t VenueType) bool {
	switch t {
	case VenueHotel, VenueRestaurant, VenueActivity:
		return true
	}
	return false
}

type Venue struct {
	ID   uuid.UUID `json:"venue_id"`
	Name string    `json:"name"`
	Type VenueType `json:"type"`
	City string    `json:"city,omitempty"`

	// Coordinates are nullable: imported records sometimes arrive without
	// a geocode. Venues missing either value are never ranked.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	PriceLevel *int     `json:"price_level,omitempty"` // 1–4 cost tier
	Tags       []string `json:"tags,omitempty"`
	Rating     *float64 `json:"rating,omitempty"` // 0–5

	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VenueFilter struct {
	Type      *VenueType
	City      string
	MinRating *float64
	Limit     int
	Offset    int
}

// EngineSettings is the singleton tunable-parameter record for the
// recommendation engine, keyed by a fixed row id. Splits and weights must
// each sum to 1.0; the admin API enforces that before any write reaches
// the store.
type EngineSettings struct {
	SplitRatioHotel    float64 `json:"split_ratio_hotel"`
	SplitRatioFood     float64 `json:"split_ratio_food"`
	SplitRatioActivity float64 `json:"split_ratio_activity"`

	WeightPriceFit float64 `json:"weight_price_fit"`
	WeightDistance float64 `json:"weight_distance"`
	WeightAffinity float64 `json:"weight_affinity"`
	WeightRating   float64 `json:"weight_rating"`

	PenaltyPerKm float64 `json:"penalty_per_km"`

	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VenueStats struct {
	TotalVenues      int `json:"total_venues"`
	TotalHotels      int `json:"total_hotels"`
	TotalRestaurants int `json:"total_restaurants"`
	TotalActivities  int `json:"total_activities"`
	MissingCoords    int `json:"missing_coords"`
}

type Store interface {
	CreateVenue(ctx context.Context, v *Venue) error
	GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error)
	ListVenues(ctx context.Context, filter VenueFilter) ([]*Venue, error)
	UpdateVenue(ctx context.Context, v *Venue) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error

	// ListCandidates returns venues of the given type that carry both
	// coordinates, ordered by creation time for stable downstream ranking.
	ListCandidates(ctx context.Context, venueType VenueType) ([]*Venue, error)

	GetEngineSettings(ctx context.Context) (*EngineSettings, error)
	UpsertEngineSettings(ctx context.Context, s *EngineSettings) error

	GetStats(ctx context.Context) (*VenueStats, error)

	Close() error
}
