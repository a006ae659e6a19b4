package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusPastDue   BookingStatus = "past_due"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type ServiceType string

const (
	ServiceBasic        ServiceType = "basic"
	ServiceIntermediate ServiceType = "intermediate"
	ServiceAdvanced     ServiceType = "advanced"
	ServiceCommercial   ServiceType = "commercial"
)

type Frequency string

const (
	FrequencyOneTime  Frequency = "one-time"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Booking is a row in the bookings table. The reference is the sole
// correlation key across Stripe metadata, calendar events and customer
// lookups.
type Booking struct {
	ID        int64  `json:"id,omitempty"`
	Reference string `json:"reference"`

	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Postcode string `json:"postcode,omitempty"`

	Service         ServiceType `json:"service"`
	ServiceLabel    string      `json:"service_label"`
	PropertySummary string      `json:"property_summary"`
	Frequency       Frequency   `json:"frequency"`
	FrequencyLabel  string      `json:"frequency_label"`

	PerVisitPrice   int    `json:"per_visit_price"`
	MonthlyEstimate int    `json:"monthly_estimate,omitempty"`
	PaymentSummary  string `json:"payment_summary,omitempty"`

	Extras            []string `json:"extras,omitempty"`
	CustomExtrasText  string   `json:"custom_extras_text,omitempty"`
	CustomExtrasPrice int      `json:"custom_extras_price,omitempty"`
	CustomExtrasNote  string   `json:"custom_extras_summary,omitempty"`
	PromoCode         string   `json:"promo_code,omitempty"`
	PromoDiscount     int      `json:"promo_discount,omitempty"`

	Status BookingStatus `json:"status"`

	StripeSessionID      string `json:"stripe_session_id,omitempty"`
	StripeCustomerID     string `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string `json:"stripe_subscription_id,omitempty"`
	SubscriptionStatus   string `json:"subscription_status,omitempty"`
	CurrentPeriodEnd     string `json:"current_period_end,omitempty"`

	SeriesID string `json:"series_id,omitempty"`

	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Notes         string `json:"notes,omitempty"`

	AmountPaid int `json:"amount_paid,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
