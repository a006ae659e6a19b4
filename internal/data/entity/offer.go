package entity

import (
	"time"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Offer is a promotional record applied to a quote at display time.
type Offer struct {
	ID            int64        `json:"id,omitempty"`
	Title         string       `json:"title"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int          `json:"discount_value"`
	Enabled       bool         `json:"enabled"`
	StartsAt      time.Time    `json:"starts_at"`
	EndsAt        time.Time    `json:"ends_at"`
	UpdatedAt     time.Time    `json:"updated_at,omitempty"`
}

// ActiveAt reports whether the offer applies at the given instant.
func (o *Offer) ActiveAt(now time.Time) bool {
	if o == nil || !o.Enabled {
		return false
	}
	return !now.Before(o.StartsAt) && !now.After(o.EndsAt)
}
