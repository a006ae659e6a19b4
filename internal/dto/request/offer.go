package request

import (
	"time"
)

// SaveOfferRequest is the admin PUT /api/admin/offer.
type SaveOfferRequest struct {
	Title         string    `json:"title" validate:"required"`
	DiscountType  string    `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue int       `json:"discount_value" validate:"required,min=1"`
	Enabled       bool      `json:"enabled"`
	StartsAt      time.Time `json:"starts_at" validate:"required"`
	EndsAt        time.Time `json:"ends_at" validate:"required"`
}
