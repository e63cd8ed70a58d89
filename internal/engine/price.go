package engine

import "math"

// defaultPriceLevel substitutes for venues that carry no cost tier.
const defaultPriceLevel = 2

// Per-person/night base rates by category. These back an explicit
// heuristic, not a real price lookup: the estimate exists to compare
// candidates against a budget bucket, not to reflect listed prices.
const (
	hotelBaseRate      = 50.0 // per room-night
	restaurantBaseRate = 30.0 // per head
	activityBaseRate   = 20.0 // per head
)

// EstimatePrice returns the heuristic expected cost of a venue for the
// whole group over the whole trip. priceLevel nil defaults to tier 2.
// Hotel rooms are assumed to sleep two, so the group books ceil(size/2)
// rooms per night.
func EstimatePrice(priceLevel *int, category Category, groupSize, days int) float64 {
	level := defaultPriceLevel
	if priceLevel != nil {
		level = *priceLevel
	}

	switch category {
	case CategoryHotel:
		rooms := math.Ceil(float64(groupSize) / 2)
		return float64(level) * hotelBaseRate * float64(days) * rooms
	case CategoryRestaurant:
		return float64(level) * restaurantBaseRate * float64(groupSize)
	default:
		return float64(level) * activityBaseRate * float64(groupSize)
	}
}
