package calendar

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
)

const (
	propertyBookingReference = "bookingReference"
	defaultPreferredTime     = "09:00"
)

// referencePattern matches a booking reference embedded in event text.
// Kept deliberately loose (SMQ- and legacy SM- tokens) so references
// survive manual edits in the calendar UI that strip metadata.
var referencePattern = regexp.MustCompile(`\b(?:SMQ|SM)-[A-Z0-9]+(?:-[A-Z0-9]+)*`)

// BuildEvent maps a booking to its deterministic calendar event payload.
// The reference rides in both the summary text and the private extended
// properties so either channel can recover it.
func BuildEvent(booking *entity.Booking, tz *time.Location, durationHours int) (*Event, error) {
	start, err := StartTime(booking, tz)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(durationHours) * time.Hour)

	description := fmt.Sprintf("Customer: %s\nPhone: %s\nEmail: %s", booking.Name, booking.Phone, booking.Email)
	if booking.Address != "" {
		description += "\nAddress: " + booking.Address
	}
	if booking.Notes != "" {
		description += "\nNotes: " + booking.Notes
	}
	description += "\nBooking: " + booking.Reference

	return &Event{
		Summary:     fmt.Sprintf("%s — %s — %s", booking.Reference, booking.Name, booking.ServiceLabel),
		Description: description,
		Start:       &EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: tz.String()},
		End:         &EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: tz.String()},
		ExtendedProperties: &ExtendedProperties{
			Private: map[string]string{propertyBookingReference: booking.Reference},
		},
	}, nil
}

// StartTime resolves a booking's preferred date and time in the business
// timezone. Missing preferred_time defaults to the morning slot.
func StartTime(booking *entity.Booking, tz *time.Location) (time.Time, error) {
	if booking.PreferredDate == "" {
		return time.Time{}, fmt.Errorf("booking %s has no preferred date", booking.Reference)
	}

	preferredTime := booking.PreferredTime
	if preferredTime == "" {
		preferredTime = defaultPreferredTime
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", booking.PreferredDate+" "+preferredTime, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse booking %s schedule: %w", booking.Reference, err)
	}

	return start, nil
}

// ExtractReference pulls the booking reference out of an event.
// Structured metadata wins; the text regex is the fallback for events a
// human has edited. The second return reports whether the fallback fired.
func ExtractReference(event *Event) (string, bool) {
	if event.ExtendedProperties != nil {
		if ref, ok := event.ExtendedProperties.Private[propertyBookingReference]; ok && ref != "" {
			return ref, false
		}
	}

	if match := referencePattern.FindString(event.Summary); match != "" {
		return match, true
	}
	if match := referencePattern.FindString(event.Description); match != "" {
		return match, true
	}

	return "", false
}
