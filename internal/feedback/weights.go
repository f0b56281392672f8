// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package feedback

import (
	"github.com/fadehaus/fadehaus/internal/models"
	"github.com/fadehaus/fadehaus/internal/recommend"
)

// Weight bounds match what the recommender clamps to, so derived weights
// land in the effective range.
const (
	weightMin = -2
	weightMax = 3
)

// DeriveWeights turns a user's review history into preference weights for
// the recommender. Each review votes on the keyword tags found in its
// service and comment text: a rating of 4 or 5 adds one, a rating of 1 or 2
// subtracts one, and a 3 abstains. Totals are clamped to the recommender's
// weight range and zero totals are dropped.
func DeriveWeights(reviews []models.Feedback) map[string]int {
	totals := make(map[string]int)
	for _, fb := range reviews {
		var delta int
		switch {
		case fb.Rating >= 4:
			delta = 1
		case fb.Rating <= 2:
			delta = -1
		default:
			continue
		}
		for _, tag := range recommend.MatchingPrefTags(fb.Service, fb.Comment) {
			totals[tag] += delta
		}
	}

	weights := make(map[string]int, len(totals))
	for tag, w := range totals {
		if w > weightMax {
			w = weightMax
		}
		if w < weightMin {
			w = weightMin
		}
		if w != 0 {
			weights[tag] = w
		}
	}
	return weights
}
