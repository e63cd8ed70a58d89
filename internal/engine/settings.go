package engine

import (
	"fmt"
	"math"

	"github.com/wanderplan/compass/internal/store"
)

// SumTolerance is the allowed drift when splits or weights are checked
// against 1.0. Externally edited settings within this band are accepted.
const SumTolerance = 0.01

// SplitSet controls how the total trip budget is divided between venue
// categories. All three ratios must sum to 1.0 (±SumTolerance).
type SplitSet struct {
	Hotel    float64
	Food     float64
	Activity float64
}

// WeightSet defines the relative importance of each ranking factor.
// All four weights must sum to 1.0 (±SumTolerance).
type WeightSet struct {
	PriceFit float64
	Distance float64
	Affinity float64
	Rating   float64
}

// Settings is the immutable per-call configuration of the ranking engine.
// Callers obtain one from a SettingsLoader and pass it in; the engine never
// reads ambient state.
type Settings struct {
	Splits       SplitSet
	Weights      WeightSet
	PenaltyPerKm float64
}

// DefaultSettings returns the hard-coded fallback used whenever the stored
// settings record is missing or unreadable.
func DefaultSettings() Settings {
	return Settings{
		Splits: SplitSet{
			Hotel:    0.4,
			Food:     0.3,
			Activity: 0.3,
		},
		Weights: WeightSet{
			PriceFit: 0.3,
			Distance: 0.2,
			Affinity: 0.3,
			Rating:   0.2,
		},
		PenaltyPerKm: 10.0,
	}
}

// Sum returns the total of all split ratios.
func (s SplitSet) Sum() float64 {
	return s.Hotel + s.Food + s.Activity
}

// Validate checks that splits sum to 1.0 and none are out of [0,1].
func (s SplitSet) Validate() error {
	if math.Abs(s.Sum()-1.0) > SumTolerance {
		return fmt.Errorf("split ratios sum to %.4f, must sum to 1.0", s.Sum())
	}
	for _, v := range []float64{s.Hotel, s.Food, s.Activity} {
		if v < 0 || v > 1 {
			return fmt.Errorf("split ratio out of range: %f", v)
		}
	}
	return nil
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.PriceFit + w.Distance + w.Affinity + w.Rating
}

// Validate checks that weights sum to 1.0 and none are out of [0,1].
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > SumTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.PriceFit, w.Distance, w.Affinity, w.Rating} {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight out of range: %f", v)
		}
	}
	return nil
}

// Validate checks both sum invariants plus the distance penalty sign.
func (s Settings) Validate() error {
	if err := s.Splits.Validate(); err != nil {
		return err
	}
	if err := s.Weights.Validate(); err != nil {
		return err
	}
	if s.PenaltyPerKm < 0 {
		return fmt.Errorf("penalty_per_km is negative: %f", s.PenaltyPerKm)
	}
	return nil
}

// SettingsFromRecord converts a stored settings row into an engine value.
func SettingsFromRecord(rec *store.EngineSettings) Settings {
	return Settings{
		Splits: SplitSet{
			Hotel:    rec.SplitRatioHotel,
			Food:     rec.SplitRatioFood,
			Activity: rec.SplitRatioActivity,
		},
		Weights: WeightSet{
			PriceFit: rec.WeightPriceFit,
			Distance: rec.WeightDistance,
			Affinity: rec.WeightAffinity,
			Rating:   rec.WeightRating,
		},
		PenaltyPerKm: rec.PenaltyPerKm,
	}
}

// Record converts engine settings back into a storable row.
func (s Settings) Record() *store.EngineSettings {
	return &store.EngineSettings{
		SplitRatioHotel:    s.Splits.Hotel,
		SplitRatioFood:     s.Splits.Food,
		SplitRatioActivity: s.Splits.Activity,
		WeightPriceFit:     s.Weights.PriceFit,
		WeightDistance:     s.Weights.Distance,
		WeightAffinity:     s.Weights.Affinity,
		WeightRating:       s.Weights.Rating,
		PenaltyPerKm:       s.PenaltyPerKm,
	}
}

// Rebalance rescales the entries of values not flagged in pinned so the
// whole set sums to 1.0 again, leaving pinned entries untouched. This backs
// the slider behavior of the tuning UI: moving one slider proportionally
// redistributes the remainder across its siblings. If all unpinned entries
// are zero the remainder is spread evenly between them. When the pinned
// entries alone exceed 1.0 the unpinned entries go to zero and the result
// will fail validation, which is the intended rejection path.
func Rebalance(values []float64, pinned []bool) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	var pinnedSum, freeSum float64
	freeCount := 0
	for i, v := range values {
		if pinned[i] {
			pinnedSum += v
		} else {
			freeSum += v
			freeCount++
		}
	}
	if freeCount == 0 {
		return out
	}

	remainder := 1.0 - pinnedSum
	if remainder < 0 {
		remainder = 0
	}

	for i := range out {
		if pinned[i] {
			continue
		}
		if freeSum > 0 {
			out[i] = values[i] / freeSum * remainder
		} else {
			out[i] = remainder / float64(freeCount)
		}
	}
	return out
}
