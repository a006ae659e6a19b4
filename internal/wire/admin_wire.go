package wire

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/adaptor"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/middleware"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	// Everything here requires the X-Admin-Key header
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.KeyHash, log))

		// Booking management
		r.Route("/api/admin/bookings", func(r chi.Router) {
			// GET /api/admin/bookings - List bookings with filters
			r.Get("/", handler.Booking.AdminList)

			// GET /api/admin/bookings/{reference} - View booking details
			r.Get("/{reference}", handler.Booking.AdminGet)

			// PATCH /api/admin/bookings/{reference} - Edit a booking
			r.Patch("/{reference}", handler.Booking.AdminUpdate)

			// DELETE /api/admin/bookings/{reference} - Remove a booking
			r.Delete("/{reference}", handler.Booking.AdminDelete)
		})

		// Site-wide promotional offer
		r.Get("/api/admin/offer", handler.Offer.GetOffer)
		r.Put("/api/admin/offer", handler.Offer.SaveOffer)

		// Google Calendar integration
		r.Get("/api/google-calendar/status", handler.Calendar.Status)
		r.Post("/api/google-calendar/connect", handler.Calendar.Connect)
		r.Post("/api/google-calendar/sync", handler.Calendar.Sync)
	})
}
