// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package main is the entry point for the Fadehaus server.
//
// Fadehaus is a barbershop booking service with deterministic style
// recommendations. The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, FADEHAUS_* environment
//  2. Store: BadgerDB at store.path (in-memory when the path is empty)
//  3. Recommendation engine over the seeded style catalog
//  4. Booking and feedback services
//  5. HTTP server: REST API under /api/v1 plus /metrics
//
// The server shuts down gracefully on SIGINT and SIGTERM, draining in-flight
// requests up to server.shutdown_timeout.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadehaus/fadehaus/internal/api"
	"github.com/fadehaus/fadehaus/internal/booking"
	"github.com/fadehaus/fadehaus/internal/catalog"
	"github.com/fadehaus/fadehaus/internal/config"
	"github.com/fadehaus/fadehaus/internal/feedback"
	"github.com/fadehaus/fadehaus/internal/kvstore"
	"github.com/fadehaus/fadehaus/internal/logging"
	"github.com/fadehaus/fadehaus/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("store_path", cfg.Store.Path).
		Msg("Starting Fadehaus")

	store, err := kvstore.OpenBadger(cfg.Store.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	if cfg.Store.Path == "" {
		logging.Warn().Msg("Store path is empty, running in memory; data is lost on restart")
	}

	logger := logging.Logger()

	engine, err := recommend.NewEngine(&cfg.Recommend, catalog.Styles(), logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}
	engine.SetStore(store)

	bookingSvc := booking.NewService(store, engine, logger)
	feedbackSvc := feedback.NewService(store, logger)

	handlers := api.NewHandlers(bookingSvc, feedbackSvc, engine, store, logger)
	middleware := api.NewMiddleware(api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		RateLimitRequests:  cfg.API.RateLimitReqs,
		RateLimitWindow:    cfg.API.RateLimitWindow,
		RateLimitDisabled:  cfg.API.RateLimitDisabled,
	})
	router := api.NewRouter(handlers, middleware)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
