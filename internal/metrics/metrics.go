package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compass_recommendations_served_total",
			Help: "Ranked recommendation lists served, by category",
		},
		[]string{"category"},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "compass_ranking_duration_seconds",
			Help: "End-to-end duration of a ranking call including the candidate fetch",
		},
		[]string{"category"},
	)

	CandidatesEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compass_candidates_evaluated_total",
			Help: "Candidate venues scored, by category",
		},
		[]string{"category"},
	)

	CandidatesExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compass_candidates_excluded_total",
			Help: "Candidate venues skipped for missing coordinates, by category",
		},
		[]string{"category"},
	)

	CandidateFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compass_candidate_fetch_failures_total",
			Help: "Candidate fetches that failed and degraded to an empty result",
		},
		[]string{"category"},
	)

	SettingsFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compass_settings_fallbacks_total",
			Help: "Ranking calls that fell back to hard-coded default settings",
		},
	)
)
