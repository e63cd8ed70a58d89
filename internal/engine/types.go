package engine

import (
	"time"

	"github.com/wanderplan/compass/internal/store"
)

// Category selects which budget bucket and price heuristic a ranking call
// uses. Values mirror store.VenueType.
type Category string

const (
	CategoryHotel      Category = "hotel"
	CategoryRestaurant Category = "restaurant"
	CategoryActivity   Category = "activity"
)

// ValidCategory reports whether c is a rankable category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryHotel, CategoryRestaurant, CategoryActivity:
		return true
	}
	return false
}

// VenueType returns the store-side type matching the category.
func (c Category) VenueType() store.VenueType {
	return store.VenueType(c)
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TripParams carries the per-request trip context. It is ephemeral: the
// engine never persists it.
type TripParams struct {
	TotalBudget float64
	GroupSize   int
	Days        int
	StartDate   time.Time
	EndDate     time.Time
	Preferences []string
	Anchor      Coordinates
}

// RankedVenue is one ranked candidate with its full score breakdown. Each
// component is independently inspectable; Score is the weighted aggregate
// the list is ordered by.
type RankedVenue struct {
	Venue *store.Venue `json:"venue"`

	Score float64 `json:"score"`

	PriceScore    float64 `json:"price_score"`
	DistanceScore float64 `json:"distance_score"`
	AffinityScore float64 `json:"affinity_score"`
	RatingScore   float64 `json:"rating_score"`

	DistanceKm     float64 `json:"distance_km"`
	EstimatedPrice float64 `json:"estimated_price"`
}
