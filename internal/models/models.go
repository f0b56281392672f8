// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package models defines the persisted domain records shared by the booking
// and feedback services and the HTTP layer. Field names in JSON match the
// stored document shape, so renames here are a data migration.
package models

// Appointment statuses.
const (
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is one confirmed booking.
type Appointment struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	ShopID      string `json:"shopId"`
	BarberID    string `json:"barberId"`
	ServiceID   string `json:"serviceId"`
	Service     string `json:"service"`
	DateISO     string `json:"dateISO"`
	Time        string `json:"time"`
	DurationMin int    `json:"duration"`
	PriceUSD    int    `json:"price"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// Feedback is one review a user left after a visit.
type Feedback struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	BarberID  string `json:"barberId"`
	Service   string `json:"service,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// BarberStats is the rolling review aggregate kept per barber.
type BarberStats struct {
	BarberID    string  `json:"barberId"`
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}

// Slot is one offerable start time on a given date.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
