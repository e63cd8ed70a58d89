package events

type RecommendationServedEvent struct {
	Category       string  `json:"category"`
	CandidateCount int     `json:"candidate_count"`
	ResultCount    int     `json:"result_count"`
	TopVenueID     string  `json:"top_venue_id,omitempty"`
	TopScore       float64 `json:"top_score,omitempty"`
	DurationMs     int64   `json:"duration_ms"`
}

type SettingsUpdatedEvent struct {
	SplitRatioHotel    float64 `json:"split_ratio_hotel"`
	SplitRatioFood     float64 `json:"split_ratio_food"`
	SplitRatioActivity float64 `json:"split_ratio_activity"`
	WeightPriceFit     float64 `json:"weight_price_fit"`
	WeightDistance     float64 `json:"weight_distance"`
	WeightAffinity     float64 `json:"weight_affinity"`
	WeightRating       float64 `json:"weight_rating"`
	PenaltyPerKm       float64 `json:"penalty_per_km"`
	UpdatedBy          string  `json:"updated_by,omitempty"`
}

type VenueEvent struct {
	VenueID string `json:"venue_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	City    string `json:"city,omitempty"`
}

type VenuesImportedEvent struct {
	City     string `json:"city"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Source   string `json:"source"`
}
