package response

import (
	"time"
)

// CalendarStatusResponse is GET /api/google-calendar/status.
type CalendarStatusResponse struct {
	Connected   bool      `json:"connected"`
	CalendarID  string    `json:"calendar_id,omitempty"`
	TokenExpiry time.Time `json:"token_expiry,omitempty"`
}

// SyncReport summarises one sync pass. Idempotent reruns show zeros
// everywhere except Unchanged.
type SyncReport struct {
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Removed        int `json:"removed"`
	Unchanged      int `json:"unchanged"`
	PulledUpdates  int `json:"pulled_updates"`
	Orphans        int `json:"orphans"`
	TextFallbacks  int `json:"text_fallbacks"`
	MappingsSynced int `json:"mappings_synced"`
}

// CheckoutResponse is POST /api/stripe/checkout-booking.
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PortalResponse is POST /api/stripe/portal.
type PortalResponse struct {
	URL string `json:"url"`
}
