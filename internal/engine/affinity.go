package engine

import "strings"

// neutralAffinity is returned when the user expressed no preferences at
// all: a candidate should not be penalized for the user staying silent.
const neutralAffinity = 50.0

// AffinityScore measures lexical overlap between user preference tags and
// a venue's tags, on a 0–100 scale.
//
// A tag matches when it contains, or is contained by, any preference
// (case-insensitive). The score is the fraction of matched tags over the
// larger of the two sets. That denominator is deliberate: downstream
// weights were tuned against this exact ratio, so it must not be swapped
// for Jaccard or a plain overlap coefficient.
func AffinityScore(preferences, tags []string) float64 {
	if len(tags) == 0 {
		return 0
	}
	if len(preferences) == 0 {
		return neutralAffinity
	}

	matches := 0
	for _, tag := range tags {
		t := strings.ToLower(tag)
		for _, pref := range preferences {
			p := strings.ToLower(pref)
			if strings.Contains(t, p) || strings.Contains(p, t) {
				matches++
				break
			}
		}
	}

	denom := len(preferences)
	if len(tags) > denom {
		denom = len(tags)
	}
	return float64(matches) / float64(denom) * 100
}
