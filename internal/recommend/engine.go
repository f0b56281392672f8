// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package recommend implements the rule-based style recommendation engine:
// a deterministic multi-factor scoring function over the style catalog, with
// user preferences inferred from face shape, booking history, and feedback.
//
// Scoring itself is deterministic and never fails; only the persistence
// boundary (RefreshForUser) can return an error. Persistence is reached
// through the narrow Store interface so the engine can be tested without a
// database.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Store is the persistence port the engine writes through. It is an opaque
// key-value mapping; the kvstore package provides the implementations.
type Store interface {
	// GetHistory returns the user's booking history, most recent first.
	GetHistory(ctx context.Context, userID string) ([]HistoryRecord, error)

	// SetRecommendations replaces the user's stored ranked style list.
	SetRecommendations(ctx context.Context, userID string, recs []ScoredStyle) error
}

// Engine scores the style catalog for user profiles. It is safe for
// concurrent use: the catalog and config are fixed at construction and every
// call operates on caller-supplied inputs.
type Engine struct {
	config  *Config
	catalog []Style
	logger  zerolog.Logger
	store   Store
}

// NewEngine creates a recommendation engine over the given catalog.
// A nil config uses the defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog []Style, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(catalog) == 0 {
		return nil, errors.New("style catalog is empty")
	}
	for _, s := range catalog {
		if len(s.FaceShapes) == 0 {
			return nil, fmt.Errorf("style %q has no face shapes", s.ID)
		}
	}

	styles := make([]Style, len(catalog))
	copy(styles, catalog)

	return &Engine{
		config:  cfg.Clone(),
		catalog: styles,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetStore sets the persistence port used by RefreshForUser.
func (e *Engine) SetStore(s Store) {
	e.store = s
}

// Catalog returns a copy of the style catalog in seed order.
func (e *Engine) Catalog() []Style {
	styles := make([]Style, len(e.catalog))
	copy(styles, e.catalog)
	return styles
}

// Config returns a copy of the scoring configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// RefreshForUser recomputes the user's ranked style list and persists it
// under the user's recommendations key. When recent is non-nil it is treated
// as the newest history entry, so a booking confirmed a moment ago shapes
// the stored list immediately, before the history write has landed.
//
// The history read is best-effort: on failure the engine logs a warning and
// scores against an empty history rather than failing the caller's flow.
// A failed write is returned along with the computed list so callers can
// decide whether staleness matters to them.
func (e *Engine) RefreshForUser(ctx context.Context, userID string, profile Profile, recent *RecentBooking) ([]ScoredStyle, error) {
	if e.store == nil {
		return nil, errors.New("store not configured")
	}

	history, err := e.store.GetHistory(ctx, userID)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("history read failed, scoring with empty history")
		history = nil
	}

	if recent != nil {
		history = append([]HistoryRecord{recent.HistoryRecord()}, history...)
	}

	recs := e.ScoreStyles(profile, history)

	if err := e.store.SetRecommendations(ctx, userID, recs); err != nil {
		return recs, fmt.Errorf("store recommendations: %w", err)
	}

	e.logger.Debug().
		Str("user_id", userID).
		Int("history_len", len(history)).
		Msg("recommendations refreshed")

	return recs, nil
}
