package entity

import (
	"time"
)

// GoogleIntegration holds the stored OAuth state for the single connected
// Google Calendar account.
type GoogleIntegration struct {
	ID           int64     `json:"id,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenExpiry  time.Time `json:"token_expiry"`
	CalendarID   string    `json:"calendar_id,omitempty"`
	Connected    bool      `json:"connected"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
