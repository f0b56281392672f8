// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package recommend

import (
	"math"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/fadehaus/fadehaus/internal/metrics"
)

// testCatalog mirrors the production six-style catalog, trimmed to the
// fields scoring reads.
func testCatalog() []Style {
	return []Style{
		{ID: "modern-fade", Name: "Modern Fade", FaceShapes: []string{"Oval", "Square"}, Service: "Skin Fade"},
		{ID: "classic-side-part", Name: "Classic Side Part", FaceShapes: []string{"Oval", "Square", "Heart"}, Service: "Haircut & Styling"},
		{ID: "textured-crop", Name: "Textured Crop", FaceShapes: []string{"Round", "Oval"}, Service: "Haircut & Styling"},
		{ID: "tight-taper", Name: "Tight Taper", FaceShapes: []string{"Round", "Diamond", "Square"}, Service: "Haircut & Styling"},
		{ID: "low-fade-beard", Name: "Low Fade + Beard", FaceShapes: []string{"Oval", "Square", "Round"}, Service: "Cut + Beard"},
		{ID: "buzz-clean", Name: "Buzz & Clean", FaceShapes: []string{"Square", "Diamond"}, Service: "Haircut & Styling"},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(nil, testCatalog(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// scoreByID extracts the score of one style from a result list.
func scoreByID(t *testing.T, scored []ScoredStyle, id string) float64 {
	t.Helper()
	for _, s := range scored {
		if s.ID == id {
			return s.Score
		}
	}
	t.Fatalf("style %q not in results", id)
	return 0
}

func repeatHistory(service string, n int) []HistoryRecord {
	h := make([]HistoryRecord, n)
	for i := range h {
		h[i] = HistoryRecord{Service: service}
	}
	return h
}

func TestScoreStylesFaceShapeBase(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	tests := []struct {
		name      string
		faceShape string
		want      map[string]float64
	}{
		{
			name:      "square matches five of six styles",
			faceShape: "Square",
			want: map[string]float64{
				"modern-fade":       0.6,
				"classic-side-part": 0.6,
				"textured-crop":     0.2,
				"tight-taper":       0.6,
				"low-fade-beard":    0.6,
				"buzz-clean":        0.6,
			},
		},
		{
			name:      "empty face shape defaults to oval",
			faceShape: "",
			want: map[string]float64{
				"modern-fade":       0.6,
				"classic-side-part": 0.6,
				"textured-crop":     0.6,
				"tight-taper":       0.2,
				"low-fade-beard":    0.6,
				"buzz-clean":        0.2,
			},
		},
		{
			name:      "match is case-insensitive",
			faceShape: "sQuArE",
			want: map[string]float64{
				"modern-fade": 0.6,
			},
		},
		{
			name:      "unknown face shape never matches",
			faceShape: "Oblong",
			want: map[string]float64{
				"modern-fade":       0.2,
				"classic-side-part": 0.2,
				"textured-crop":     0.2,
				"tight-taper":       0.2,
				"low-fade-beard":    0.2,
				"buzz-clean":        0.2,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scored := e.ScoreStyles(Profile{FaceShape: tt.faceShape}, nil)
			if len(scored) != 6 {
				t.Fatalf("expected 6 results, got %d", len(scored))
			}
			for id, want := range tt.want {
				if got := scoreByID(t, scored, id); !almostEqual(got, want) {
					t.Errorf("%s: score = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestScoreStylesTieOrderIsStable(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	// With an empty history and no weights, five styles tie at 0.6 for a
	// Square profile. Ties must keep catalog order, with the sole 0.2
	// style last.
	scored := e.ScoreStyles(Profile{FaceShape: "Square"}, nil)

	wantOrder := []string{
		"modern-fade",
		"classic-side-part",
		"tight-taper",
		"low-fade-beard",
		"buzz-clean",
		"textured-crop",
	}
	for i, id := range wantOrder {
		if scored[i].ID != id {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, scored[i].ID, id, styleIDs(scored))
		}
	}
}

func styleIDs(scored []ScoredStyle) []string {
	ids := make([]string, len(scored))
	for i, s := range scored {
		ids[i] = s.ID
	}
	return ids
}

func TestScoreStylesPopularityBoost(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	// Unmatched face shape isolates the boost on top of the 0.2 base.
	profile := Profile{FaceShape: "Oblong"}

	tests := []struct {
		name  string
		count int
		want  float64
	}{
		{"no bookings", 0, 0.2},
		{"one booking", 1, 0.2 + 0.08 + 0.08}, // boost plus recency at index 0
		{"two bookings", 2, 0.2 + 0.16 + 0.08},
		{"three bookings reach the cap", 3, 0.2 + 0.24 + 0.08},
		{"five bookings stay capped", 5, 0.2 + 0.24 + 0.08},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scored := e.ScoreStyles(profile, repeatHistory("Skin Fade", tt.count))
			if got := scoreByID(t, scored, "modern-fade"); !almostEqual(got, tt.want) {
				t.Errorf("modern-fade score = %v, want %v", got, tt.want)
			}
		})
	}

	// Boost is monotonically non-decreasing in count.
	prev := -1.0
	for n := 0; n <= 6; n++ {
		scored := e.ScoreStyles(profile, repeatHistory("Skin Fade", n))
		got := scoreByID(t, scored, "modern-fade")
		if got < prev {
			t.Fatalf("score decreased from %v to %v at count %d", prev, got, n)
		}
		prev = got
	}
}

func TestScoreStylesRecencyNudge(t *testing.T) {
	t.Parallel()
	e := testEngine(t)
	profile := Profile{FaceShape: "Oblong"}

	recent := []HistoryRecord{
		{Service: "Skin Fade"},
		{Service: "Cut + Beard"},
	}
	scored := e.ScoreStyles(profile, recent)
	// Skin Fade: base 0.2 + boost 0.08 + recency 0.08.
	if got := scoreByID(t, scored, "modern-fade"); !almostEqual(got, 0.36) {
		t.Errorf("recent service score = %v, want 0.36", got)
	}
	// Cut + Beard: base 0.2 + boost 0.08, no recency.
	if got := scoreByID(t, scored, "low-fade-beard"); !almostEqual(got, 0.28) {
		t.Errorf("non-recent service score = %v, want 0.28", got)
	}

	// Reordering everything after index 0 changes nothing.
	reordered := []HistoryRecord{
		{Service: "Skin Fade"},
		{Service: "Line Up"},
		{Service: "Cut + Beard"},
	}
	base := e.ScoreStyles(profile, []HistoryRecord{
		{Service: "Skin Fade"},
		{Service: "Cut + Beard"},
		{Service: "Line Up"},
	})
	swapped := e.ScoreStyles(profile, reordered)
	for i := range base {
		if base[i].ID != swapped[i].ID || !almostEqual(base[i].Score, swapped[i].Score) {
			t.Fatalf("reordering history tail changed result: %v vs %v", base[i], swapped[i])
		}
	}
}

func TestScoreStylesPreferenceNudge(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	tests := []struct {
		name    string
		profile Profile
		styleID string
		want    float64
	}{
		{
			name:    "positive fade weight lifts fade styles",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"fade": 2}},
			styleID: "modern-fade",
			want:    0.6 + 0.06*2,
		},
		{
			name:    "styles without the keyword are unaffected",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"fade": 2}},
			styleID: "textured-crop",
			want:    0.6,
		},
		{
			name:    "weight above the range is clamped to 3",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"crop": 10}},
			styleID: "textured-crop",
			want:    0.6 + 0.06*3,
		},
		{
			name:    "weight below the range is clamped to -2",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"fade": -7}},
			styleID: "modern-fade",
			want:    0.6 - 0.06*2,
		},
		{
			name:    "zero weight is ignored",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"fade": 0}},
			styleID: "modern-fade",
			want:    0.6,
		},
		{
			name:    "side part text matches the classic tag",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"classic": 1}},
			styleID: "classic-side-part",
			want:    0.6 + 0.06,
		},
		{
			name:    "multiple matching tags stack",
			profile: Profile{FaceShape: "Oval", PrefWeights: map[string]int{"fade": 1, "beard": 1}},
			styleID: "low-fade-beard",
			want:    0.6 + 0.06 + 0.06,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scored := e.ScoreStyles(tt.profile, nil)
			if got := scoreByID(t, scored, tt.styleID); !almostEqual(got, tt.want) {
				t.Errorf("%s score = %v, want %v", tt.styleID, got, tt.want)
			}
		})
	}
}

func TestScoreStylesCeilingClamp(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	// 0.6 base + 0.24 capped boost + 0.08 recency + 0.18 fade weight would
	// be 1.1 without the ceiling.
	profile := Profile{FaceShape: "Oval", PrefWeights: map[string]int{"fade": 3}}
	scored := e.ScoreStyles(profile, repeatHistory("Skin Fade", 4))

	if got := scoreByID(t, scored, "modern-fade"); !almostEqual(got, 1.0) {
		t.Errorf("score = %v, want ceiling 1.0", got)
	}
}

func TestScoreStylesHasNoLowerFloor(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	// Inherited asymmetry: the ceiling is clamped but negative preference
	// weights can push a mismatched style below its base. buzz-clean does
	// not suit a Heart face shape and carries only the buzz tag.
	profile := Profile{FaceShape: "Heart", PrefWeights: map[string]int{"buzz": -2}}
	scored := e.ScoreStyles(profile, nil)

	if got := scoreByID(t, scored, "buzz-clean"); !almostEqual(got, 0.2-0.12) {
		t.Errorf("score = %v, want 0.08 (no floor applied)", got)
	}
}

func TestScoreStylesIsPureAndTotal(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	profile := Profile{FaceShape: "Square", PrefWeights: map[string]int{"fade": 1}}
	history := []HistoryRecord{{Service: "Skin Fade"}, {Service: "Beard Trim"}}

	first := e.ScoreStyles(profile, history)
	second := e.ScoreStyles(profile, history)
	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || !almostEqual(first[i].Score, second[i].Score) {
			t.Fatalf("repeat call diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}

	// Inputs are not mutated.
	if history[0].Service != "Skin Fade" || history[1].Service != "Beard Trim" {
		t.Error("history mutated by scoring")
	}

	// The zero profile and nil history are valid.
	scored := e.ScoreStyles(Profile{}, nil)
	if len(scored) != 6 {
		t.Fatalf("zero-value inputs: expected 6 results, got %d", len(scored))
	}
}

func TestScoreStylesCustomConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.FaceMatchBase = 0.5
	cfg.RecencyBonus = 0.2
	e, err := NewEngine(cfg, testCatalog(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	scored := e.ScoreStyles(Profile{FaceShape: "Oval"}, []HistoryRecord{{Service: "Skin Fade"}})
	if got := scoreByID(t, scored, "modern-fade"); !almostEqual(got, 0.5+0.08+0.2) {
		t.Errorf("score = %v, want %v", got, 0.5+0.08+0.2)
	}
}

func TestConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  int
	}{
		{0.6, 60},
		{0.72, 72},
		{1.0, 100},
		{0.004, 0},
		{0.085, 9},
	}
	for _, tt := range tests {
		tt := tt
		s := ScoredStyle{Score: tt.score}
		if got := s.Confidence(); got != tt.want {
			t.Errorf("Confidence(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestMatchingPrefTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		service string
		want    []string
	}{
		{"Modern Fade", "Skin Fade", []string{"fade"}},
		{"Low Fade + Beard", "Cut + Beard", []string{"fade", "beard"}},
		{"Classic Side Part", "Haircut & Styling", []string{"classic"}},
		{"Buzz & Clean", "Haircut & Styling", []string{"buzz"}},
		{"Textured Crop", "Haircut & Styling", []string{"crop"}},
		{"Plain", "Nothing", nil},
	}

	for _, tt := range tests {
		tt := tt
		got := MatchingPrefTags(tt.name, tt.service)
		if len(got) != len(tt.want) {
			t.Errorf("MatchingPrefTags(%q, %q) = %v, want %v", tt.name, tt.service, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("MatchingPrefTags(%q, %q) = %v, want %v", tt.name, tt.service, got, tt.want)
				break
			}
		}
	}
}

func TestBestTimeWindowIsConstant(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	histories := [][]HistoryRecord{
		nil,
		{},
		repeatHistory("Skin Fade", 3),
	}

	want := TimeWindow{Label: "Thu 5–7pm or Sat 10–12", Reason: "based on your history"}
	for _, h := range histories {
		if got := e.BestTimeWindow(h); got != want {
			t.Errorf("BestTimeWindow(%v) = %+v, want %+v", h, got, want)
		}
	}
}

func TestScoreStylesObservesDuration(t *testing.T) {
	e := testEngine(t)

	var m dto.Metric
	if err := metrics.RecommendationScoreDuration.Write(&m); err != nil {
		t.Fatalf("read histogram: %v", err)
	}
	before := m.GetHistogram().GetSampleCount()

	e.ScoreStyles(Profile{}, nil)

	if err := metrics.RecommendationScoreDuration.Write(&m); err != nil {
		t.Fatalf("read histogram: %v", err)
	}
	if after := m.GetHistogram().GetSampleCount(); after <= before {
		t.Errorf("scoring run not observed: samples %d -> %d", before, after)
	}
}
