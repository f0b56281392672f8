// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package feedback records post-visit reviews, keeps per-barber rating
// aggregates, and derives style preference weights from review sentiment.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fadehaus/fadehaus/internal/catalog"
	"github.com/fadehaus/fadehaus/internal/kvstore"
	"github.com/fadehaus/fadehaus/internal/models"
)

// ErrUnknownBarber is returned when a review names a barber not in the
// catalog.
var ErrUnknownBarber = errors.New("feedback: unknown barber")

// Store is the persistence surface the service needs.
type Store interface {
	AppendFeedback(ctx context.Context, fb models.Feedback) error
	GetUserFeedback(ctx context.Context, userID string) ([]models.Feedback, error)
	GetAllFeedback(ctx context.Context) ([]models.Feedback, error)
	GetBarberStats(ctx context.Context, barberID string) (models.BarberStats, error)
	SetBarberStats(ctx context.Context, barberID string, stats models.BarberStats) error
}

// SubmitRequest is a new review.
type SubmitRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	BarberID string `json:"barberId" validate:"required,max=64"`
	Service  string `json:"service" validate:"omitempty,max=100"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=1000"`
}

// Service coordinates review persistence and barber aggregates.
type Service struct {
	store    Store
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a feedback service backed by the given store.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		logger:   logger.With().Str("component", "feedback").Logger(),
		now:      time.Now,
	}
}

// Submit validates and stores a review, then folds its rating into the
// barber's rolling average.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (models.Feedback, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Feedback{}, fmt.Errorf("validate feedback: %w", err)
	}
	if _, ok := catalog.BarberByID(req.BarberID); !ok {
		return models.Feedback{}, fmt.Errorf("%w: %s", ErrUnknownBarber, req.BarberID)
	}

	fb := models.Feedback{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		BarberID:  req.BarberID,
		Service:   req.Service,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.store.AppendFeedback(ctx, fb); err != nil {
		return models.Feedback{}, fmt.Errorf("store feedback: %w", err)
	}

	if err := s.updateBarberStats(ctx, fb.BarberID, fb.Rating); err != nil {
		// The review itself is saved; a stale aggregate self-corrects on the
		// next successful submit.
		s.logger.Warn().Err(err).Str("barber_id", fb.BarberID).
			Msg("failed to update barber stats")
	}

	s.logger.Info().
		Str("feedback_id", fb.ID).
		Str("barber_id", fb.BarberID).
		Int("rating", fb.Rating).
		Msg("feedback submitted")

	return fb, nil
}

func (s *Service) updateBarberStats(ctx context.Context, barberID string, rating int) error {
	stats, err := s.store.GetBarberStats(ctx, barberID)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return err
	}

	total := stats.AvgRating*float64(stats.ReviewCount) + float64(rating)
	stats.BarberID = barberID
	stats.ReviewCount++
	stats.AvgRating = math.Round(total/float64(stats.ReviewCount)*100) / 100

	return s.store.SetBarberStats(ctx, barberID, stats)
}

// ListForUser returns the reviews one user has submitted.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	return s.store.GetUserFeedback(ctx, userID)
}

// ListForBarber returns every review naming the given barber.
func (s *Service) ListForBarber(ctx context.Context, barberID string) ([]models.Feedback, error) {
	all, err := s.store.GetAllFeedback(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Feedback, 0, len(all))
	for _, fb := range all {
		if fb.BarberID == barberID {
			out = append(out, fb)
		}
	}
	return out, nil
}

// ListAll returns every review across all users.
func (s *Service) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return s.store.GetAllFeedback(ctx)
}

// PrefWeightsFor derives style preference weights from the user's reviews.
// A user with no reviews gets an empty map.
func (s *Service) PrefWeightsFor(ctx context.Context, userID string) (map[string]int, error) {
	reviews, err := s.store.GetUserFeedback(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	return DeriveWeights(reviews), nil
}

// BarberStats returns a barber's rolling aggregate. A barber with no reviews
// gets a zero-count aggregate, not an error.
func (s *Service) BarberStats(ctx context.Context, barberID string) (models.BarberStats, error) {
	stats, err := s.store.GetBarberStats(ctx, barberID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.BarberStats{BarberID: barberID}, nil
	}
	if err != nil {
		return models.BarberStats{}, err
	}
	return stats, nil
}
