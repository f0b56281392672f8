// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package recommend

import (
	"math"
	"strings"
)

// Face shape tags. A profile's face shape is compared case-insensitively, so
// these canonical spellings are for catalog seeding and UI display.
const (
	FaceOval    = "Oval"
	FaceRound   = "Round"
	FaceSquare  = "Square"
	FaceHeart   = "Heart"
	FaceDiamond = "Diamond"
)

// FaceShapes lists every known face shape tag.
var FaceShapes = []string{FaceOval, FaceRound, FaceSquare, FaceHeart, FaceDiamond}

// KnownFaceShape reports whether s is one of the recognized face shape tags,
// compared case-insensitively.
func KnownFaceShape(s string) bool {
	for _, fs := range FaceShapes {
		if strings.EqualFold(fs, s) {
			return true
		}
	}
	return false
}

// Style is one haircut pattern in the catalog. The catalog is seeded at
// startup and never mutated; FaceShapes is never empty.
type Style struct {
	// ID is the unique style key.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// FaceShapes lists the face shape tags this style suits.
	FaceShapes []string `json:"faceShapes"`

	// Maintenance and Difficulty are descriptive labels shown in the UI.
	// They do not participate in scoring.
	Maintenance string `json:"maintenance"`
	Difficulty  string `json:"difficulty"`

	// Service is the bookable service category this style maps to.
	// History records are matched against it.
	Service string `json:"service"`

	// Image and ImageAlt are display-only metadata.
	Image    string `json:"image,omitempty"`
	ImageAlt string `json:"imageAlt,omitempty"`
}

// SuitsFaceShape reports whether any of the style's face shapes equals the
// given shape, compared case-insensitively.
func (s Style) SuitsFaceShape(face string) bool {
	for _, fs := range s.FaceShapes {
		if strings.EqualFold(fs, face) {
			return true
		}
	}
	return false
}

// Profile is the per-call user input to scoring. Both fields are optional:
// a missing face shape defaults to Oval and missing weights contribute
// nothing. The zero value is a valid profile.
type Profile struct {
	// FaceShape is the user's self-reported or quiz-derived face shape.
	// Unknown values simply never match, they are not an error.
	FaceShape string `json:"faceShape,omitempty"`

	// PrefWeights maps preference tags (fade, taper, beard, buzz, classic,
	// crop) to signed weights inferred from feedback ratings. Values are
	// clamped to the configured range at use.
	PrefWeights map[string]int `json:"prefWeights,omitempty"`
}

// HistoryRecord is one past or just-confirmed booking. Only Service and the
// record's position matter to scoring; index 0 is the most recent record and
// callers are responsible for maintaining that order when persisting.
type HistoryRecord struct {
	Service     string `json:"service"`
	DateISO     string `json:"dateISO,omitempty"`
	Time        string `json:"time,omitempty"`
	DurationMin int    `json:"duration,omitempty"`
	BarberID    string `json:"barber,omitempty"`
	ShopID      string `json:"shop,omitempty"`
}

// RecentBooking carries the fields of a booking confirmed a moment ago,
// before it has been persisted to history.
type RecentBooking struct {
	ShopID      string `json:"shop"`
	BarberID    string `json:"barber"`
	Service     string `json:"service"`
	DurationMin int    `json:"duration"`
	DateISO     string `json:"dateISO"`
	Time        string `json:"time"`
}

// HistoryRecord converts the booking into the history entry it will become.
func (b RecentBooking) HistoryRecord() HistoryRecord {
	return HistoryRecord{
		Service:     b.Service,
		DateISO:     b.DateISO,
		Time:        b.Time,
		DurationMin: b.DurationMin,
		BarberID:    b.BarberID,
		ShopID:      b.ShopID,
	}
}

// ScoredStyle is a catalog style with its recommendation score attached.
// Produced fresh on every scoring call.
type ScoredStyle struct {
	Style

	// Score is the combined rule score, capped at 1.0.
	Score float64 `json:"score"`
}

// Confidence returns the score as a rounded percentage for display badges.
func (s ScoredStyle) Confidence() int {
	return int(math.Round(s.Score * 100))
}

// TimeWindow is a suggested booking window with a short justification.
type TimeWindow struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}
