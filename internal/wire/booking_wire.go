package wire

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES ====================
	// Customers authenticate with the reference+email pair they received
	// when the quote was submitted.

	// GET /api/bookings/lookup - Fetch one booking by reference and email
	r.Get("/api/bookings/lookup", bookingHandler.Lookup)

	// GET /api/bookings/search - List bookings by email and postcode
	r.Get("/api/bookings/search", bookingHandler.Search)

	// PATCH /api/bookings/update - Reschedule or annotate a pending booking
	r.Patch("/api/bookings/update", bookingHandler.SelfUpdate)
}
