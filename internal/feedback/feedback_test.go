// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fadehaus/fadehaus/internal/kvstore"
	"github.com/fadehaus/fadehaus/internal/models"
)

// mockStore implements Store for testing.
type mockStore struct {
	byUser    map[string][]models.Feedback
	all       []models.Feedback
	stats     map[string]models.BarberStats
	appendErr error
	statsErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		byUser: make(map[string][]models.Feedback),
		stats:  make(map[string]models.BarberStats),
	}
}

func (m *mockStore) AppendFeedback(ctx context.Context, fb models.Feedback) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.byUser[fb.UserID] = append(m.byUser[fb.UserID], fb)
	m.all = append(m.all, fb)
	return nil
}

func (m *mockStore) GetUserFeedback(ctx context.Context, userID string) ([]models.Feedback, error) {
	return m.byUser[userID], nil
}

func (m *mockStore) GetAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	return m.all, nil
}

func (m *mockStore) GetBarberStats(ctx context.Context, barberID string) (models.BarberStats, error) {
	if m.statsErr != nil {
		return models.BarberStats{}, m.statsErr
	}
	stats, ok := m.stats[barberID]
	if !ok {
		return models.BarberStats{}, kvstore.ErrNotFound
	}
	return stats, nil
}

func (m *mockStore) SetBarberStats(ctx context.Context, barberID string, stats models.BarberStats) error {
	m.stats[barberID] = stats
	return nil
}

func testService(store *mockStore) *Service {
	s := NewService(store, zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSubmitStoresReview(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	s := testService(store)

	fb, err := s.Submit(context.Background(), SubmitRequest{
		UserID:   "u1",
		BarberID: "ayo",
		Service:  "Skin Fade",
		Rating:   5,
		Comment:  "clean fade",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.ID == "" {
		t.Error("review has no ID")
	}
	if fb.CreatedAt != "2026-09-01T12:00:00Z" {
		t.Errorf("CreatedAt = %q", fb.CreatedAt)
	}
	if len(store.byUser["u1"]) != 1 || len(store.all) != 1 {
		t.Errorf("review not stored: user=%d all=%d", len(store.byUser["u1"]), len(store.all))
	}
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  SubmitRequest
	}{
		{"missing user", SubmitRequest{BarberID: "ayo", Rating: 5}},
		{"missing barber", SubmitRequest{UserID: "u1", Rating: 5}},
		{"rating too low", SubmitRequest{UserID: "u1", BarberID: "ayo", Rating: 0}},
		{"rating too high", SubmitRequest{UserID: "u1", BarberID: "ayo", Rating: 6}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := testService(newMockStore())
			if _, err := s.Submit(context.Background(), tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSubmitRejectsUnknownBarber(t *testing.T) {
	t.Parallel()

	s := testService(newMockStore())
	_, err := s.Submit(context.Background(), SubmitRequest{
		UserID:   "u1",
		BarberID: "nobody",
		Rating:   4,
	})
	if !errors.Is(err, ErrUnknownBarber) {
		t.Fatalf("expected ErrUnknownBarber, got %v", err)
	}
}

func TestSubmitUpdatesRollingAverage(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	s := testService(store)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 3} {
		if _, err := s.Submit(ctx, SubmitRequest{UserID: "u1", BarberID: "ayo", Rating: rating}); err != nil {
			t.Fatalf("Submit(%d): %v", rating, err)
		}
	}

	stats := store.stats["ayo"]
	if stats.ReviewCount != 3 {
		t.Errorf("ReviewCount = %d, want 3", stats.ReviewCount)
	}
	if stats.AvgRating != 4.0 {
		t.Errorf("AvgRating = %v, want 4.0", stats.AvgRating)
	}
}

func TestSubmitAverageRoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	s := testService(store)
	ctx := context.Background()

	// 5, 4, 4 averages to 4.333..., stored as 4.33.
	for _, rating := range []int{5, 4, 4} {
		if _, err := s.Submit(ctx, SubmitRequest{UserID: "u1", BarberID: "remy", Rating: rating}); err != nil {
			t.Fatalf("Submit(%d): %v", rating, err)
		}
	}
	if got := store.stats["remy"].AvgRating; got != 4.33 {
		t.Errorf("AvgRating = %v, want 4.33", got)
	}
}

func TestSubmitSurvivesStatsFailure(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.statsErr = errors.New("stats backend down")
	s := testService(store)

	fb, err := s.Submit(context.Background(), SubmitRequest{UserID: "u1", BarberID: "ayo", Rating: 5})
	if err != nil {
		t.Fatalf("Submit should tolerate a stats failure: %v", err)
	}
	if len(store.all) != 1 || store.all[0].ID != fb.ID {
		t.Error("review was not stored despite stats failure")
	}
}

func TestListForBarberFilters(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	s := testService(store)
	ctx := context.Background()

	seed := []SubmitRequest{
		{UserID: "u1", BarberID: "ayo", Rating: 5},
		{UserID: "u2", BarberID: "remy", Rating: 4},
		{UserID: "u3", BarberID: "ayo", Rating: 3},
	}
	for _, req := range seed {
		if _, err := s.Submit(ctx, req); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	got, err := s.ListForBarber(ctx, "ayo")
	if err != nil {
		t.Fatalf("ListForBarber: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reviews, want 2", len(got))
	}
	for _, fb := range got {
		if fb.BarberID != "ayo" {
			t.Errorf("review for %q leaked into ayo's list", fb.BarberID)
		}
	}
}

func TestBarberStatsForUnreviewedBarber(t *testing.T) {
	t.Parallel()

	s := testService(newMockStore())
	stats, err := s.BarberStats(context.Background(), "zara")
	if err != nil {
		t.Fatalf("BarberStats: %v", err)
	}
	if stats.BarberID != "zara" || stats.ReviewCount != 0 || stats.AvgRating != 0 {
		t.Errorf("expected zero aggregate, got %+v", stats)
	}
}

func TestDeriveWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reviews []models.Feedback
		want    map[string]int
	}{
		{
			name: "high rating votes up matching tags",
			reviews: []models.Feedback{
				{Service: "Skin Fade", Rating: 5},
			},
			want: map[string]int{"fade": 1},
		},
		{
			name: "low rating votes down",
			reviews: []models.Feedback{
				{Service: "Skin Fade", Rating: 1},
			},
			want: map[string]int{"fade": -1},
		},
		{
			name: "neutral rating abstains",
			reviews: []models.Feedback{
				{Service: "Skin Fade", Rating: 3},
			},
			want: map[string]int{},
		},
		{
			name: "comment text counts",
			reviews: []models.Feedback{
				{Service: "Haircut & Styling", Comment: "loved the taper and the beard work", Rating: 5},
			},
			want: map[string]int{"taper": 1, "beard": 1},
		},
		{
			name: "votes accumulate and clamp at three",
			reviews: []models.Feedback{
				{Service: "Skin Fade", Rating: 5},
				{Service: "Skin Fade", Rating: 5},
				{Service: "Skin Fade", Rating: 4},
				{Service: "Skin Fade", Rating: 4},
			},
			want: map[string]int{"fade": 3},
		},
		{
			name: "negative votes clamp at minus two",
			reviews: []models.Feedback{
				{Service: "Buzz Cut", Rating: 1},
				{Service: "Buzz Cut", Rating: 2},
				{Service: "Buzz Cut", Rating: 1},
			},
			want: map[string]int{"buzz": -2},
		},
		{
			name: "opposing votes cancel to nothing",
			reviews: []models.Feedback{
				{Service: "Skin Fade", Rating: 5},
				{Service: "Skin Fade", Rating: 1},
			},
			want: map[string]int{},
		},
		{
			name: "side part maps to the classic tag",
			reviews: []models.Feedback{
				{Service: "Haircut & Styling", Comment: "great side part", Rating: 5},
			},
			want: map[string]int{"classic": 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DeriveWeights(tt.reviews)
			if len(got) != len(tt.want) {
				t.Fatalf("DeriveWeights = %v, want %v", got, tt.want)
			}
			for tag, w := range tt.want {
				if got[tag] != w {
					t.Errorf("weight[%q] = %d, want %d", tag, got[tag], w)
				}
			}
		})
	}
}

func TestPrefWeightsFor(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.byUser["u1"] = []models.Feedback{
		{UserID: "u1", Service: "Skin Fade", Rating: 5, Comment: "love the fade"},
		{UserID: "u1", Service: "Skin Fade", Rating: 5},
		{UserID: "u1", Service: "Beard Trim", Rating: 1},
	}
	s := testService(store)

	weights, err := s.PrefWeightsFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PrefWeightsFor: %v", err)
	}
	if weights["fade"] != 2 {
		t.Errorf("fade weight = %d, want 2", weights["fade"])
	}
	if weights["beard"] != -1 {
		t.Errorf("beard weight = %d, want -1", weights["beard"])
	}

	empty, err := s.PrefWeightsFor(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("PrefWeightsFor with no reviews: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no weights for a user with no reviews, got %v", empty)
	}
}
