package entity

import (
	"time"
)

type MappingStatus string

const (
	MappingStatusActive    MappingStatus = "active"
	MappingStatusCancelled MappingStatus = "cancelled"
)

// BookingGoogleEvent joins a local booking to its Google Calendar event.
// Keyed by booking_reference, upserted on every sync pass.
type BookingGoogleEvent struct {
	BookingReference string        `json:"booking_reference"`
	EventID          string        `json:"event_id"`
	CalendarID       string        `json:"calendar_id"`
	Status           MappingStatus `json:"status"`
	LastSyncedAt     time.Time     `json:"last_synced_at"`
}
