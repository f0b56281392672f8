// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/fadehaus/fadehaus/internal/booking"
	"github.com/fadehaus/fadehaus/internal/catalog"
	"github.com/fadehaus/fadehaus/internal/feedback"
	"github.com/fadehaus/fadehaus/internal/kvstore"
	"github.com/fadehaus/fadehaus/internal/metrics"
	"github.com/fadehaus/fadehaus/internal/models"
	"github.com/fadehaus/fadehaus/internal/recommend"
)

// UserStore is the slice of the key-value store the handlers read and write
// directly.
type UserStore interface {
	GetProfile(ctx context.Context, userID string) (recommend.Profile, error)
	SetProfile(ctx context.Context, userID string, p recommend.Profile) error
	GetRecommendations(ctx context.Context, userID string) ([]recommend.ScoredStyle, error)
	GetHistory(ctx context.Context, userID string) ([]recommend.HistoryRecord, error)
}

// prefTagSet holds the accepted PrefWeights keys.
var prefTagSet = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range recommend.PrefTagNames() {
		set[name] = struct{}{}
	}
	return set
}()

// Handlers implements the HTTP endpoints.
type Handlers struct {
	booking  *booking.Service
	feedback *feedback.Service
	engine   *recommend.Engine
	store    UserStore
	logger   zerolog.Logger
}

// NewHandlers creates the handler set over the given services.
func NewHandlers(bookingSvc *booking.Service, feedbackSvc *feedback.Service, engine *recommend.Engine, store UserStore, logger zerolog.Logger) *Handlers {
	return &Handlers{
		booking:  bookingSvc,
		feedback: feedbackSvc,
		engine:   engine,
		store:    store,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps service errors to HTTP responses.
func writeServiceError(rw *ResponseWriter, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		rw.ValidationError("request failed validation", verr.Error())
	case errors.Is(err, booking.ErrUnknownService),
		errors.Is(err, booking.ErrUnknownShop),
		errors.Is(err, booking.ErrUnknownBarber),
		errors.Is(err, booking.ErrBarberShopMismatch),
		errors.Is(err, feedback.ErrUnknownBarber):
		rw.BadRequest(err.Error())
	case errors.Is(err, booking.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, booking.ErrNotConfirmed):
		rw.Conflict(err.Error())
	default:
		rw.StoreError(err)
	}
}

// Health reports service liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"status":    "ok",
		"service":   "fadehaus",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthLive reports process liveness for orchestrator probes.
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{"status": "alive"})
}

// HealthReady reports readiness, probing the store with a cheap read.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if _, err := h.store.GetHistory(r.Context(), "healthcheck"); err != nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "store unavailable")
		return
	}
	rw.Success(map[string]any{"status": "ready"})
}

// CatalogStyles lists the style catalog.
func (h *Handlers) CatalogStyles(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(catalog.Styles())
}

// CatalogServices lists the bookable services.
func (h *Handlers) CatalogServices(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(catalog.Services())
}

// CatalogShops lists the shops.
func (h *Handlers) CatalogShops(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(catalog.Shops())
}

// CatalogBarbers lists barbers, optionally filtered by the shop query param.
func (h *Handlers) CatalogBarbers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	shopID := r.URL.Query().Get("shop")
	if shopID != "" {
		if _, ok := catalog.ShopByID(shopID); !ok {
			rw.NotFound("unknown shop: " + shopID)
			return
		}
	}
	rw.Success(catalog.Barbers(shopID))
}

// BookingSlots lists offerable start times for a service on a date.
func (h *Handlers) BookingSlots(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	dateISO := q.Get("date")
	serviceID := q.Get("service")
	if dateISO == "" || serviceID == "" {
		rw.BadRequest("date and service query parameters are required")
		return
	}

	metrics.SlotQueries.Inc()
	slots, err := h.booking.Slots(r.Context(), q.Get("user"), dateISO, serviceID)
	if err != nil {
		if errors.Is(err, booking.ErrUnknownService) {
			rw.BadRequest(err.Error())
		} else {
			rw.BadRequest("invalid slot query: " + err.Error())
		}
		return
	}
	rw.Success(map[string]any{
		"date":      dateISO,
		"serviceId": serviceID,
		"slots":     slots,
	})
}

// BookingCreate confirms a new booking.
func (h *Handlers) BookingCreate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req booking.ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}

	appt, err := h.booking.Confirm(r.Context(), req)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	metrics.RecordBookingConfirmed(appt.ShopID, appt.Service)
	rw.Created(appt)
}

// BookingsForUser lists a user's appointments, newest first.
func (h *Handlers) BookingsForUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	appts, err := h.booking.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	rw.Success(appts)
}

// BookingComplete marks a confirmed appointment as completed.
func (h *Handlers) BookingComplete(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := r.URL.Query().Get("user")
	if userID == "" {
		rw.BadRequest("user query parameter is required")
		return
	}

	appt, err := h.booking.MarkCompleted(r.Context(), userID, chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	metrics.BookingsCompleted.Inc()
	rw.Success(appt)
}

// loadProfile reads the user's profile, treating a never-saved profile as
// the zero value.
func (h *Handlers) loadProfile(r *http.Request, userID string) (recommend.Profile, error) {
	profile, err := h.store.GetProfile(r.Context(), userID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return recommend.Profile{}, nil
	}
	return profile, err
}

// scoringProfile loads the profile for scoring. A profile without explicit
// preference weights gets weights derived from the user's reviews; a failed
// derivation is logged and scoring proceeds without weights.
func (h *Handlers) scoringProfile(r *http.Request, userID string) (recommend.Profile, error) {
	profile, err := h.loadProfile(r, userID)
	if err != nil {
		return recommend.Profile{}, err
	}
	if len(profile.PrefWeights) == 0 {
		weights, err := h.feedback.PrefWeightsFor(r.Context(), userID)
		if err != nil {
			h.logger.Warn().Err(err).Str("user_id", userID).
				Msg("failed to derive preference weights from feedback")
		} else if len(weights) > 0 {
			profile.PrefWeights = weights
		}
	}
	return profile, nil
}

// Recommendations returns the user's stored recommendation list. A user
// without a stored list gets one computed from their profile and history on
// the fly, without persisting it.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := chi.URLParam(r, "userID")

	recs, err := h.store.GetRecommendations(r.Context(), userID)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if len(recs) == 0 {
		profile, err := h.scoringProfile(r, userID)
		if err != nil {
			rw.StoreError(err)
			return
		}
		history, err := h.store.GetHistory(r.Context(), userID)
		if err != nil {
			rw.StoreError(err)
			return
		}
		recs = h.engine.ScoreStyles(profile, history)
	}
	rw.Success(recs)
}

// RecommendationsRefresh recomputes and persists the user's recommendations.
func (h *Handlers) RecommendationsRefresh(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := chi.URLParam(r, "userID")

	profile, err := h.scoringProfile(r, userID)
	if err != nil {
		rw.StoreError(err)
		return
	}

	recs, err := h.engine.RefreshForUser(r.Context(), userID, profile, nil)
	metrics.RecordRecommendationRefresh(err)
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(recs)
}

// RecommendationWindow suggests a booking window for the user.
func (h *Handlers) RecommendationWindow(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	history, err := h.store.GetHistory(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(h.engine.BestTimeWindow(history))
}

// ProfileGet returns the user's profile, or the zero profile if none was
// ever saved.
func (h *Handlers) ProfileGet(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	profile, err := h.loadProfile(r, chi.URLParam(r, "userID"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(profile)
}

// ProfilePut replaces the user's profile.
func (h *Handlers) ProfilePut(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var profile recommend.Profile
	if err := decodeJSON(r, &profile); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if profile.FaceShape != "" && !recommend.KnownFaceShape(profile.FaceShape) {
		rw.BadRequest("unknown face shape: " + profile.FaceShape)
		return
	}
	for tag := range profile.PrefWeights {
		if _, ok := prefTagSet[tag]; !ok {
			rw.BadRequest("unknown preference tag: " + tag)
			return
		}
	}

	if err := h.store.SetProfile(r.Context(), chi.URLParam(r, "userID"), profile); err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(profile)
}

// FeedbackSubmit records a new review.
func (h *Handlers) FeedbackSubmit(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req feedback.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}

	fb, err := h.feedback.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	metrics.RecordFeedback(fb.Rating)
	rw.Created(fb)
}

// FeedbackForUser lists the reviews a user submitted.
func (h *Handlers) FeedbackForUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	reviews, err := h.feedback.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	if reviews == nil {
		reviews = []models.Feedback{}
	}
	rw.Success(reviews)
}

// FeedbackAll lists every review across users.
func (h *Handlers) FeedbackAll(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	reviews, err := h.feedback.ListAll(r.Context())
	if err != nil {
		rw.StoreError(err)
		return
	}
	if reviews == nil {
		reviews = []models.Feedback{}
	}
	rw.Success(reviews)
}

// FeedbackForBarber returns a barber's review aggregate and reviews.
func (h *Handlers) FeedbackForBarber(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	barberID := chi.URLParam(r, "barberID")

	barber, ok := catalog.BarberByID(barberID)
	if !ok {
		rw.NotFound("unknown barber: " + barberID)
		return
	}

	stats, err := h.feedback.BarberStats(r.Context(), barberID)
	if err != nil {
		rw.StoreError(err)
		return
	}
	reviews, err := h.feedback.ListForBarber(r.Context(), barberID)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if reviews == nil {
		reviews = []models.Feedback{}
	}

	rw.Success(map[string]any{
		"barber":  barber,
		"stats":   stats,
		"reviews": reviews,
	})
}
