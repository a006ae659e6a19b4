package wire

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStripe(r chi.Router, stripeHandler *adaptor.StripeHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/stripe/checkout-booking - Start a checkout session
	r.Post("/api/stripe/checkout-booking", stripeHandler.Checkout)

	// POST /api/stripe/portal - Open the billing portal for a subscription
	r.Post("/api/stripe/portal", stripeHandler.Portal)

	// POST /api/stripe/webhook - Stripe event delivery (signature-verified)
	r.Post("/api/stripe/webhook", stripeHandler.Webhook)
}
