package engine

import (
	"log/slog"
	"math"
	"sort"

	"github.com/wanderplan/compass/internal/store"
)

// MaxResults caps the ranked list length.
const MaxResults = 20

// Ranker runs the weighted multi-criteria scoring over a candidate set.
// It is stateless between calls; concurrent Rank calls need no
// coordination.
type Ranker struct {
	logger *slog.Logger
}

func NewRanker(logger *slog.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Rank scores every candidate with valid coordinates and returns at most
// MaxResults of them, ordered by descending score. Ties keep input order.
// An empty candidate set yields an empty (non-nil) list.
//
// Note the weights for price fit and affinity are applied twice: once
// inside the sub-score and again in the final weighted sum. That
// compounding matches the behavior the tuning values were calibrated
// against and must be preserved.
func (r *Ranker) Rank(settings Settings, params TripParams, category Category, currentSpend float64, candidates []*store.Venue) []RankedVenue {
	w := settings.Weights
	bucket := AllocateBucket(settings, params.TotalBudget, category, currentSpend)

	ranked := make([]RankedVenue, 0, len(candidates))
	excluded := 0
	for _, v := range candidates {
		if v.Latitude == nil || v.Longitude == nil {
			excluded++
			continue
		}

		est := EstimatePrice(v.PriceLevel, category, params.GroupSize, params.Days)
		priceScore := priceFitScore(est, bucket, w.PriceFit)

		km := DistanceKm(params.Anchor, Coordinates{Lat: *v.Latitude, Lng: *v.Longitude})
		distanceScore := math.Max(0, 100-km*settings.PenaltyPerKm*w.Distance)

		affinityScore := AffinityScore(params.Preferences, v.Tags) * w.Affinity

		rating := 0.0
		if v.Rating != nil {
			rating = *v.Rating
		}
		ratingScore := rating / 5 * 100 * w.Rating

		score := priceScore*w.PriceFit +
			distanceScore*w.Distance +
			affinityScore*w.Affinity +
			ratingScore*w.Rating

		ranked = append(ranked, RankedVenue{
			Venue:          v,
			Score:          score,
			PriceScore:     priceScore,
			DistanceScore:  distanceScore,
			AffinityScore:  affinityScore,
			RatingScore:    ratingScore,
			DistanceKm:     km,
			EstimatedPrice: est,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}

	if r.logger != nil {
		r.logger.Debug("ranked candidates",
			"category", string(category),
			"candidates", len(candidates),
			"excluded", excluded,
			"returned", len(ranked),
			"bucket", bucket,
		)
	}
	return ranked
}

// priceFitScore is 100 when the estimate fits the bucket, otherwise 100
// minus a weighted relative-overage penalty, floored at zero. A bucket at
// or below zero scores any priced candidate at zero directly: the relative
// overage is undefined at zero and sign-flipped below it.
func priceFitScore(estimate, bucket, weight float64) float64 {
	if estimate <= bucket {
		return 100
	}
	if bucket <= 0 {
		return 0
	}
	overage := estimate - bucket
	penalty := overage / bucket * 100 * weight
	return math.Max(0, 100-penalty)
}
