package wire

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireQuote(r chi.Router, quoteHandler *adaptor.QuoteHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/quote - Calculate a quote and create the pending booking
	r.Post("/api/quote", quoteHandler.SubmitQuote)

	// POST /api/custom-extras - Price free-text extra work
	r.Post("/api/custom-extras", quoteHandler.EstimateCustomExtras)
}
