// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package booking generates bookable time slots and manages the appointment
// lifecycle. Confirming a booking also feeds the user's history and refreshes
// their style recommendations.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fadehaus/fadehaus/internal/catalog"
	"github.com/fadehaus/fadehaus/internal/feedback"
	"github.com/fadehaus/fadehaus/internal/kvstore"
	"github.com/fadehaus/fadehaus/internal/models"
	"github.com/fadehaus/fadehaus/internal/recommend"
)

// Shop hours and slot geometry, in minutes from midnight.
const (
	openMinute  = 9 * 60
	closeMinute = 18 * 60
	slotStepMin = 30

	// Cleanup time reserved after every appointment.
	bufferMin = 10
)

var (
	// ErrUnknownService is returned for a service ID not in the catalog.
	ErrUnknownService = errors.New("booking: unknown service")
	// ErrUnknownShop is returned for a shop ID not in the catalog.
	ErrUnknownShop = errors.New("booking: unknown shop")
	// ErrUnknownBarber is returned for a barber ID not in the catalog.
	ErrUnknownBarber = errors.New("booking: unknown barber")
	// ErrBarberShopMismatch is returned when the barber works at a different shop.
	ErrBarberShopMismatch = errors.New("booking: barber does not work at shop")
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("booking: appointment not found")
	// ErrNotConfirmed is returned when completing an appointment that is not
	// in the confirmed state.
	ErrNotConfirmed = errors.New("booking: appointment is not confirmed")
)

// Store is the persistence surface the service needs.
type Store interface {
	GetAppointments(ctx context.Context, userID string) ([]models.Appointment, error)
	SetAppointments(ctx context.Context, userID string, appts []models.Appointment) error
	PrependHistory(ctx context.Context, userID string, rec recommend.HistoryRecord) error
	GetProfile(ctx context.Context, userID string) (recommend.Profile, error)
	GetUserFeedback(ctx context.Context, userID string) ([]models.Feedback, error)
}

// Recommender recomputes a user's style recommendations after a booking.
type Recommender interface {
	RefreshForUser(ctx context.Context, userID string, profile recommend.Profile, recent *recommend.RecentBooking) ([]recommend.ScoredStyle, error)
}

// ConfirmRequest is a booking submission.
type ConfirmRequest struct {
	UserID    string `json:"userId" validate:"required,max=64"`
	ShopID    string `json:"shopId" validate:"required,max=64"`
	BarberID  string `json:"barberId" validate:"required,max=64"`
	ServiceID string `json:"serviceId" validate:"required,max=64"`
	DateISO   string `json:"dateISO" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
}

// Service coordinates slots, appointments, history, and recommendation
// refreshes.
type Service struct {
	store       Store
	recommender Recommender
	validate    *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewService creates a booking service. The recommender may be nil, in which
// case confirmations skip the refresh.
func NewService(store Store, recommender Recommender, logger zerolog.Logger) *Service {
	return &Service{
		store:       store,
		recommender: recommender,
		validate:    validator.New(),
		logger:      logger.With().Str("component", "booking").Logger(),
		now:         time.Now,
	}
}

// Slots returns the offerable start times for a service on a date. A slot is
// offered when the appointment plus cleanup buffer still fits before close.
// When userID is non-empty, slots overlapping that user's confirmed
// appointments on the date are marked unavailable.
func (s *Service) Slots(ctx context.Context, userID, dateISO, serviceID string) ([]models.Slot, error) {
	if _, err := time.Parse("2006-01-02", dateISO); err != nil {
		return nil, fmt.Errorf("parse date %q: %w", dateISO, err)
	}
	svc, ok := catalog.ServiceByID(serviceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, serviceID)
	}

	var taken []models.Appointment
	if userID != "" {
		appts, err := s.store.GetAppointments(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load appointments: %w", err)
		}
		for _, a := range appts {
			if a.DateISO == dateISO && a.Status == models.StatusConfirmed {
				taken = append(taken, a)
			}
		}
	}

	var slots []models.Slot
	for start := openMinute; start+svc.DurationMin+bufferMin <= closeMinute; start += slotStepMin {
		slots = append(slots, models.Slot{
			Time:      formatMinutes(start),
			Available: !overlapsAny(start, svc.DurationMin+bufferMin, taken),
		})
	}
	return slots, nil
}

func overlapsAny(start, span int, appts []models.Appointment) bool {
	end := start + span
	for _, a := range appts {
		aStart, err := parseMinutes(a.Time)
		if err != nil {
			continue
		}
		aEnd := aStart + a.DurationMin + bufferMin
		if start < aEnd && aStart < end {
			return true
		}
	}
	return false
}

// Confirm validates and stores a booking, prepends it to the user's history,
// and refreshes their recommendations. A refresh failure does not fail the
// booking.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (models.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Appointment{}, fmt.Errorf("validate booking: %w", err)
	}

	svc, ok := catalog.ServiceByID(req.ServiceID)
	if !ok {
		return models.Appointment{}, fmt.Errorf("%w: %s", ErrUnknownService, req.ServiceID)
	}
	if _, ok := catalog.ShopByID(req.ShopID); !ok {
		return models.Appointment{}, fmt.Errorf("%w: %s", ErrUnknownShop, req.ShopID)
	}
	barber, ok := catalog.BarberByID(req.BarberID)
	if !ok {
		return models.Appointment{}, fmt.Errorf("%w: %s", ErrUnknownBarber, req.BarberID)
	}
	if barber.ShopID != req.ShopID {
		return models.Appointment{}, fmt.Errorf("%w: %s at %s", ErrBarberShopMismatch, req.BarberID, req.ShopID)
	}

	appt := models.Appointment{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		ShopID:      req.ShopID,
		BarberID:    req.BarberID,
		ServiceID:   svc.ID,
		Service:     svc.Name,
		DateISO:     req.DateISO,
		Time:        req.Time,
		DurationMin: svc.DurationMin,
		PriceUSD:    svc.PriceUSD,
		Status:      models.StatusConfirmed,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	appts, err := s.store.GetAppointments(ctx, req.UserID)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("load appointments: %w", err)
	}
	updated := make([]models.Appointment, 0, len(appts)+1)
	updated = append(updated, appt)
	updated = append(updated, appts...)
	if err := s.store.SetAppointments(ctx, req.UserID, updated); err != nil {
		return models.Appointment{}, fmt.Errorf("store appointment: %w", err)
	}

	if err := s.store.PrependHistory(ctx, req.UserID, recommend.HistoryRecord{
		Service:     svc.Name,
		DateISO:     req.DateISO,
		Time:        req.Time,
		DurationMin: svc.DurationMin,
		BarberID:    req.BarberID,
		ShopID:      req.ShopID,
	}); err != nil {
		// The appointment is saved; history catches up on the next booking.
		s.logger.Warn().Err(err).Str("user_id", req.UserID).
			Msg("failed to record booking history")
	}

	s.refreshRecommendations(ctx, appt)

	s.logger.Info().
		Str("appointment_id", appt.ID).
		Str("user_id", appt.UserID).
		Str("service", appt.Service).
		Str("date", appt.DateISO).
		Str("time", appt.Time).
		Msg("booking confirmed")

	return appt, nil
}

func (s *Service) refreshRecommendations(ctx context.Context, appt models.Appointment) {
	if s.recommender == nil {
		return
	}

	profile, err := s.store.GetProfile(ctx, appt.UserID)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		s.logger.Warn().Err(err).Str("user_id", appt.UserID).
			Msg("failed to load profile for refresh")
		profile = recommend.Profile{}
	}

	// A profile without explicit weights falls back to weights inferred from
	// the user's review sentiment.
	if len(profile.PrefWeights) == 0 {
		reviews, err := s.store.GetUserFeedback(ctx, appt.UserID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", appt.UserID).
				Msg("failed to load feedback for refresh")
		} else {
			profile.PrefWeights = feedback.DeriveWeights(reviews)
		}
	}

	recent := &recommend.RecentBooking{
		ShopID:      appt.ShopID,
		BarberID:    appt.BarberID,
		Service:     appt.Service,
		DurationMin: appt.DurationMin,
		DateISO:     appt.DateISO,
		Time:        appt.Time,
	}
	if _, err := s.recommender.RefreshForUser(ctx, appt.UserID, profile, recent); err != nil {
		s.logger.Warn().Err(err).Str("user_id", appt.UserID).
			Msg("failed to refresh recommendations")
	}
}

// ListForUser returns the user's appointments, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.store.GetAppointments(ctx, userID)
}

// MarkCompleted transitions a confirmed appointment to completed.
func (s *Service) MarkCompleted(ctx context.Context, userID, appointmentID string) (models.Appointment, error) {
	appts, err := s.store.GetAppointments(ctx, userID)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("load appointments: %w", err)
	}

	for i, a := range appts {
		if a.ID != appointmentID {
			continue
		}
		if a.Status != models.StatusConfirmed {
			return models.Appointment{}, fmt.Errorf("%w: %s is %s", ErrNotConfirmed, appointmentID, a.Status)
		}
		appts[i].Status = models.StatusCompleted
		if err := s.store.SetAppointments(ctx, userID, appts); err != nil {
			return models.Appointment{}, fmt.Errorf("store appointment: %w", err)
		}
		return appts[i], nil
	}

	return models.Appointment{}, fmt.Errorf("%w: %s", ErrNotFound, appointmentID)
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
