// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package recommend

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fadehaus/fadehaus/internal/metrics"
)

// prefTag pairs a preference tag with the pattern that decides whether a
// style carries it. Patterns are matched against the lowercased
// "{name} {service}" string of each style.
type prefTag struct {
	name    string
	pattern *regexp.Regexp
}

// prefTags is the fixed tag vocabulary. PrefTagNames mirrors it for
// packages that derive weights.
var prefTags = []prefTag{
	{"fade", regexp.MustCompile(`fade`)},
	{"taper", regexp.MustCompile(`taper`)},
	{"beard", regexp.MustCompile(`beard`)},
	{"buzz", regexp.MustCompile(`buzz`)},
	{"classic", regexp.MustCompile(`classic|side part`)},
	{"crop", regexp.MustCompile(`crop`)},
}

// PrefTagNames returns the preference tag vocabulary in matching order.
func PrefTagNames() []string {
	names := make([]string, len(prefTags))
	for i, t := range prefTags {
		names[i] = t.name
	}
	return names
}

// MatchingPrefTags returns the preference tags carried by the given style
// name and service text.
func MatchingPrefTags(name, service string) []string {
	haystack := strings.ToLower(name + " " + service)
	var tags []string
	for _, t := range prefTags {
		if t.pattern.MatchString(haystack) {
			tags = append(tags, t.name)
		}
	}
	return tags
}

// ScoreStyles scores every catalog style against the profile and history and
// returns the list sorted by score descending. The sort is stable: styles
// with equal scores keep their catalog order.
//
// Each style is scored independently, with no cross-style normalization:
//
//  1. Base: FaceMatchBase if the profile's face shape (default Oval) appears
//     in the style's face shape list, else FaceMissBase. A mismatch lowers
//     the style but never excludes it.
//  2. Popularity: ServiceBoostStep per prior booking of the style's service
//     across the whole history, capped at ServiceBoostCap.
//  3. Recency: RecencyBonus if the most recent booking (history index 0)
//     matches the style's service.
//  4. Preferences: for each keyword tag the style carries that has a nonzero
//     entry in PrefWeights, PrefStep times the clamped weight.
//
// The final score is capped at MaxScore from above. There is no lower
// floor: a style whose every matching tag carries a negative weight can end
// up below FaceMissBase. Stored scores round-trip through clients that
// render them as percentages, so the asymmetry is kept rather than silently
// corrected.
//
// ScoreStyles is pure and never fails; a nil history and the zero Profile
// are both valid inputs.
func (e *Engine) ScoreStyles(profile Profile, history []HistoryRecord) []ScoredStyle {
	defer func(start time.Time) {
		metrics.RecommendationScoreDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	face := profile.FaceShape
	if face == "" {
		face = FaceOval
	}

	// Bookings per service across the whole history.
	serviceCounts := make(map[string]int, len(history))
	for _, h := range history {
		serviceCounts[h.Service]++
	}

	var mostRecentService string
	if len(history) > 0 {
		mostRecentService = history[0].Service
	}

	scored := make([]ScoredStyle, 0, len(e.catalog))
	for _, style := range e.catalog {
		score := e.config.FaceMissBase
		if style.SuitsFaceShape(face) {
			score = e.config.FaceMatchBase
		}

		boost := float64(serviceCounts[style.Service]) * e.config.ServiceBoostStep
		if boost > e.config.ServiceBoostCap {
			boost = e.config.ServiceBoostCap
		}
		score += boost

		if mostRecentService != "" && mostRecentService == style.Service {
			score += e.config.RecencyBonus
		}

		haystack := strings.ToLower(style.Name + " " + style.Service)
		for _, tag := range prefTags {
			w := profile.PrefWeights[tag.name]
			if w == 0 {
				continue
			}
			if tag.pattern.MatchString(haystack) {
				score += e.config.PrefStep * float64(e.config.clampWeight(w))
			}
		}

		if score > e.config.MaxScore {
			score = e.config.MaxScore
		}

		scored = append(scored, ScoredStyle{Style: style, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
