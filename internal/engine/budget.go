package engine

// AllocateBucket converts the total trip budget into the spending allowance
// for one category.
//
// Hotels take a straight cut of the total. The other categories share
// whatever is left after currentSpend, proportionally to their split ratio
// within the non-hotel remainder. A negative bucket (currentSpend above the
// total budget) is allowed and simply drags price scores to zero
// downstream.
func AllocateBucket(settings Settings, totalBudget float64, category Category, currentSpend float64) float64 {
	if category == CategoryHotel {
		return totalBudget * settings.Splits.Hotel
	}

	ratio := settings.Splits.Activity
	if category == CategoryRestaurant {
		ratio = settings.Splits.Food
	}

	// A 1.0 hotel split leaves nothing for the other categories; treating
	// the bucket as zero keeps the price score well-defined instead of
	// dividing by zero.
	nonHotel := 1.0 - settings.Splits.Hotel
	if nonHotel <= 0 {
		return 0
	}

	remaining := totalBudget - currentSpend
	return remaining * (ratio / nonHotel)
}
