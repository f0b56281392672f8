// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package kvstore persists user documents in a key-value store. Every value
// is a JSON document keyed by a typed prefix plus an entity ID. BadgerDB
// backs the durable store; a map-backed store exists for tests and for
// running without a data directory.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/fadehaus/fadehaus/internal/metrics"
	"github.com/fadehaus/fadehaus/internal/models"
	"github.com/fadehaus/fadehaus/internal/recommend"
)

// Key prefixes. These match the stored document layout, so changing one
// orphans existing data.
const (
	historyKeyPrefix      = "history:"
	recsKeyPrefix         = "recs:"
	profileKeyPrefix      = "profile:"
	appointmentsKeyPrefix = "appointments:"
	feedbackKeyPrefix     = "feedback:"
	barberKeyPrefix       = "barber:"

	feedbackAllKey = "feedback:all"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

// backend is the raw byte-level store under the typed accessors.
type backend interface {
	get(key string) ([]byte, error)
	set(key string, value []byte) error
	close() error
}

// Store exposes typed accessors over a key-value backend.
type Store struct {
	kv backend
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.close()
}

func (s *Store) getJSON(key string, v any) error {
	start := time.Now()
	data, err := s.kv.get(key)
	// A missing key is a routine read, not a backend failure.
	opErr := err
	if errors.Is(opErr, ErrNotFound) {
		opErr = nil
	}
	metrics.RecordStoreOperation("get", time.Since(start), opErr)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *Store) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	start := time.Now()
	err = s.kv.set(key, data)
	metrics.RecordStoreOperation("set", time.Since(start), err)
	return err
}

// getList reads a JSON list, treating a missing key as empty.
func getList[T any](s *Store, key string) ([]T, error) {
	var out []T
	if err := s.getJSON(key, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// GetHistory returns the user's booking history, most recent first. A user
// with no history gets an empty list, not an error.
func (s *Store) GetHistory(_ context.Context, userID string) ([]recommend.HistoryRecord, error) {
	return getList[recommend.HistoryRecord](s, historyKeyPrefix+userID)
}

// PrependHistory inserts a record at the head of the user's history,
// preserving the most-recent-first ordering the recommender depends on.
func (s *Store) PrependHistory(ctx context.Context, userID string, rec recommend.HistoryRecord) error {
	history, err := s.GetHistory(ctx, userID)
	if err != nil {
		return err
	}
	updated := make([]recommend.HistoryRecord, 0, len(history)+1)
	updated = append(updated, rec)
	updated = append(updated, history...)
	return s.setJSON(historyKeyPrefix+userID, updated)
}

// GetRecommendations returns the user's last computed recommendation list.
func (s *Store) GetRecommendations(_ context.Context, userID string) ([]recommend.ScoredStyle, error) {
	return getList[recommend.ScoredStyle](s, recsKeyPrefix+userID)
}

// SetRecommendations replaces the user's recommendation list.
func (s *Store) SetRecommendations(_ context.Context, userID string, recs []recommend.ScoredStyle) error {
	return s.setJSON(recsKeyPrefix+userID, recs)
}

// GetProfile returns the user's profile, or ErrNotFound if none was saved.
func (s *Store) GetProfile(_ context.Context, userID string) (recommend.Profile, error) {
	var p recommend.Profile
	if err := s.getJSON(profileKeyPrefix+userID, &p); err != nil {
		return recommend.Profile{}, err
	}
	return p, nil
}

// SetProfile replaces the user's profile.
func (s *Store) SetProfile(_ context.Context, userID string, p recommend.Profile) error {
	return s.setJSON(profileKeyPrefix+userID, p)
}

// GetAppointments returns the user's appointments, newest first.
func (s *Store) GetAppointments(_ context.Context, userID string) ([]models.Appointment, error) {
	return getList[models.Appointment](s, appointmentsKeyPrefix+userID)
}

// SetAppointments replaces the user's appointment list.
func (s *Store) SetAppointments(_ context.Context, userID string, appts []models.Appointment) error {
	return s.setJSON(appointmentsKeyPrefix+userID, appts)
}

// AppendFeedback adds a review to the submitting user's list and to the
// shop-wide list.
func (s *Store) AppendFeedback(ctx context.Context, fb models.Feedback) error {
	userList, err := getList[models.Feedback](s, feedbackKeyPrefix+fb.UserID)
	if err != nil {
		return err
	}
	if err := s.setJSON(feedbackKeyPrefix+fb.UserID, append(userList, fb)); err != nil {
		return err
	}

	all, err := getList[models.Feedback](s, feedbackAllKey)
	if err != nil {
		return err
	}
	return s.setJSON(feedbackAllKey, append(all, fb))
}

// GetUserFeedback returns the reviews submitted by one user.
func (s *Store) GetUserFeedback(_ context.Context, userID string) ([]models.Feedback, error) {
	return getList[models.Feedback](s, feedbackKeyPrefix+userID)
}

// GetAllFeedback returns every review across all users.
func (s *Store) GetAllFeedback(_ context.Context) ([]models.Feedback, error) {
	return getList[models.Feedback](s, feedbackAllKey)
}

// GetBarberStats returns a barber's review aggregate, or ErrNotFound if the
// barber has never been reviewed.
func (s *Store) GetBarberStats(_ context.Context, barberID string) (models.BarberStats, error) {
	var stats models.BarberStats
	if err := s.getJSON(barberKeyPrefix+barberID, &stats); err != nil {
		return models.BarberStats{}, err
	}
	return stats, nil
}

// SetBarberStats replaces a barber's review aggregate.
func (s *Store) SetBarberStats(_ context.Context, barberID string, stats models.BarberStats) error {
	return s.setJSON(barberKeyPrefix+barberID, stats)
}
