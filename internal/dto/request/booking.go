package request

// SelfUpdateRequest is the customer-facing PATCH /api/bookings/update.
// Only pending bookings accept it.
type SelfUpdateRequest struct {
	Reference string `json:"reference" validate:"required"`
	Email     string `json:"email" validate:"required,email"`

	PreferredDate *string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime *string `json:"preferred_time" validate:"omitempty,datetime=15:04"`
	Notes         *string `json:"notes"`
}

// AdminUpdateBookingRequest is the admin PATCH. Nil fields are untouched.
type AdminUpdateBookingRequest struct {
	Status        *string `json:"status" validate:"omitempty,oneof=pending paid past_due cancelled"`
	PreferredDate *string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime *string `json:"preferred_time" validate:"omitempty,datetime=15:04"`
	Notes         *string `json:"notes"`
	PerVisitPrice *int    `json:"per_visit_price" validate:"omitempty,min=0"`
}

// CheckoutRequest is POST /api/stripe/checkout-booking.
type CheckoutRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// PortalRequest is POST /api/stripe/portal.
type PortalRequest struct {
	Reference string `json:"reference" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}
