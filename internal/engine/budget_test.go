package engine

import (
	"math"
	"testing"
)

func TestAllocateBucketHotel(t *testing.T) {
	s := DefaultSettings()
	bucket := AllocateBucket(s, 1000, CategoryHotel, 0)
	if bucket != 400 {
		t.Errorf("hotel bucket = %f, want 400", bucket)
	}

	// currentSpend is ignored for hotels
	bucket = AllocateBucket(s, 1000, CategoryHotel, 900)
	if bucket != 400 {
		t.Errorf("hotel bucket with spend = %f, want 400", bucket)
	}
}

func TestAllocateBucketNonHotel(t *testing.T) {
	s := DefaultSettings() // 0.4/0.3/0.3

	tests := []struct {
		name     string
		category Category
		spend    float64
		want     float64
	}{
		// remaining * (0.3 / 0.6) = remaining / 2
		{"restaurant no spend", CategoryRestaurant, 0, 500},
		{"restaurant after hotel", CategoryRestaurant, 400, 300},
		{"activity after hotel", CategoryActivity, 400, 300},
		{"spend equals budget", CategoryRestaurant, 1000, 0},
		{"overspent goes negative", CategoryActivity, 1200, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateBucket(s, 1000, tt.category, tt.spend)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("bucket = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAllocateBucketFullHotelSplit(t *testing.T) {
	s := DefaultSettings()
	s.Splits = SplitSet{Hotel: 1.0, Food: 0, Activity: 0}

	if got := AllocateBucket(s, 1000, CategoryRestaurant, 0); got != 0 {
		t.Errorf("expected zero bucket when hotel split is 1.0, got %f", got)
	}
	if got := AllocateBucket(s, 1000, CategoryActivity, 200); got != 0 {
		t.Errorf("expected zero bucket when hotel split is 1.0, got %f", got)
	}
	// Hotel itself still gets the full budget.
	if got := AllocateBucket(s, 1000, CategoryHotel, 0); got != 1000 {
		t.Errorf("hotel bucket = %f, want 1000", got)
	}
}
