// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package recommend

// BestTimeWindow suggests a booking window for the sidebar hint. It accepts
// the user's history for API stability but currently always returns the same
// window.
//
// TODO: infer the window from the weekday/hour distribution of history once
// enough real booking data exists to make that meaningful.
func (e *Engine) BestTimeWindow(history []HistoryRecord) TimeWindow {
	return TimeWindow{
		Label:  "Thu 5–7pm or Sat 10–12",
		Reason: "based on your history",
	}
}
