// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handlers   *Handlers
	middleware *Middleware
}

// NewRouter creates a router over the given handlers and middleware.
func NewRouter(handlers *Handlers, middleware *Middleware) *Router {
	return &Router{handlers: handlers, middleware: middleware}
}

// Setup builds the chi handler with the full route tree.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.middleware.CORS())
	r.Use(chimiddleware.Compress(5))
	r.Use(RequestLogging())

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.middleware.RateLimit())
		r.Use(PrometheusMetrics())

		r.Get("/health", rt.handlers.Health)
		r.Get("/health/live", rt.handlers.HealthLive)
		r.Get("/health/ready", rt.handlers.HealthReady)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/styles", rt.handlers.CatalogStyles)
			r.Get("/services", rt.handlers.CatalogServices)
			r.Get("/shops", rt.handlers.CatalogShops)
			r.Get("/barbers", rt.handlers.CatalogBarbers)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/slots", rt.handlers.BookingSlots)
			r.Post("/", rt.handlers.BookingCreate)
			r.Get("/user/{userID}", rt.handlers.BookingsForUser)
			r.Post("/{appointmentID}/complete", rt.handlers.BookingComplete)
		})

		r.Route("/recommendations/user/{userID}", func(r chi.Router) {
			r.Get("/", rt.handlers.Recommendations)
			r.Post("/refresh", rt.handlers.RecommendationsRefresh)
			r.Get("/window", rt.handlers.RecommendationWindow)
		})

		r.Route("/profile/{userID}", func(r chi.Router) {
			r.Get("/", rt.handlers.ProfileGet)
			r.Put("/", rt.handlers.ProfilePut)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", rt.handlers.FeedbackSubmit)
			r.Get("/", rt.handlers.FeedbackAll)
			r.Get("/user/{userID}", rt.handlers.FeedbackForUser)
			r.Get("/barber/{barberID}", rt.handlers.FeedbackForBarber)
		})
	})

	return r
}
