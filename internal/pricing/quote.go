package pricing

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
)

// QuoteInput is the structured quote request. It is never persisted,
// only the derived Quote snapshot is.
type QuoteInput struct {
	Service      entity.ServiceType
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Rooms        int // commercial only
	Frequency    entity.Frequency
	Oven         string // "", "single", "double"
	Extras       []string

	CustomExtrasText  string
	CustomExtrasPrice int
}

// AddOn is a priced extra included in a quote.
type AddOn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

// AppliedOffer records a promotional discount applied at display time.
type AppliedOffer struct {
	Title  string `json:"title"`
	Amount int    `json:"amount"`
}

// Quote is the computed result. All label fields are denormalized so the
// UI and the stored booking snapshot render straight off them.
type Quote struct {
	PerVisitPrice   int              `json:"per_visit_price"`
	MonthlyEstimate int              `json:"monthly_estimate,omitempty"`
	PaymentSummary  string           `json:"payment_summary"`
	ServiceLabel    string           `json:"service_label"`
	PropertySummary string           `json:"property_summary"`
	Frequency       entity.Frequency `json:"frequency"`
	FrequencyLabel  string           `json:"frequency_label"`
	PackageItems    []string         `json:"package_items"`
	AddOns          []AddOn          `json:"add_ons"`
	CustomExtras    int              `json:"custom_extras_price,omitempty"`
	Offer           *AppliedOffer    `json:"offer,omitempty"`
}
