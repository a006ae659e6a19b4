package response

import (
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
)

type BookingResponse struct {
	Reference string `json:"reference"`

	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Postcode string `json:"postcode,omitempty"`

	Service         entity.ServiceType `json:"service"`
	ServiceLabel    string             `json:"service_label"`
	PropertySummary string             `json:"property_summary"`
	Frequency       entity.Frequency   `json:"frequency"`
	FrequencyLabel  string             `json:"frequency_label"`

	PerVisitPrice   int    `json:"per_visit_price"`
	MonthlyEstimate int    `json:"monthly_estimate,omitempty"`
	PaymentSummary  string `json:"payment_summary,omitempty"`

	Extras            []string `json:"extras,omitempty"`
	CustomExtrasText  string   `json:"custom_extras_text,omitempty"`
	CustomExtrasPrice int      `json:"custom_extras_price,omitempty"`

	Status             entity.BookingStatus `json:"status"`
	SubscriptionStatus string               `json:"subscription_status,omitempty"`
	CurrentPeriodEnd   string               `json:"current_period_end,omitempty"`
	SeriesID           string               `json:"series_id,omitempty"`

	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Notes         string `json:"notes,omitempty"`

	AmountPaid int       `json:"amount_paid,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		Reference:          b.Reference,
		Name:               b.Name,
		Email:              b.Email,
		Phone:              b.Phone,
		Address:            b.Address,
		Postcode:           b.Postcode,
		Service:            b.Service,
		ServiceLabel:       b.ServiceLabel,
		PropertySummary:    b.PropertySummary,
		Frequency:          b.Frequency,
		FrequencyLabel:     b.FrequencyLabel,
		PerVisitPrice:      b.PerVisitPrice,
		MonthlyEstimate:    b.MonthlyEstimate,
		PaymentSummary:     b.PaymentSummary,
		Extras:             b.Extras,
		CustomExtrasText:   b.CustomExtrasText,
		CustomExtrasPrice:  b.CustomExtrasPrice,
		Status:             b.Status,
		SubscriptionStatus: b.SubscriptionStatus,
		CurrentPeriodEnd:   b.CurrentPeriodEnd,
		SeriesID:           b.SeriesID,
		PreferredDate:      b.PreferredDate,
		PreferredTime:      b.PreferredTime,
		Notes:              b.Notes,
		AmountPaid:         b.AmountPaid,
		CreatedAt:          b.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
