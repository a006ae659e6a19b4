package response

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/pricing"
)

// QuoteResponse is returned by POST /api/quote. Submitted is false when
// the quote computed fine but the booking row could not be stored, so the
// UI can still show the price and ask the customer to call.
type QuoteResponse struct {
	Reference string        `json:"reference,omitempty"`
	Quote     pricing.Quote `json:"quote"`
	Submitted bool          `json:"submitted"`
}
