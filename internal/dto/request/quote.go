package request

// QuoteInputRequest carries the structured quote fields shared by the
// calculator and the submission endpoint.
type QuoteInputRequest struct {
	Service      string   `json:"service" validate:"required,oneof=basic intermediate advanced commercial"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Rooms        int      `json:"rooms"`
	Frequency    string   `json:"frequency" validate:"omitempty,oneof=one-time weekly bi-weekly monthly"`
	Oven         string   `json:"oven" validate:"omitempty,oneof=single double"`
	Extras       []string `json:"extras"`

	CustomExtrasText  string `json:"custom_extras_text"`
	CustomExtrasPrice int    `json:"custom_extras_price" validate:"omitempty,min=0"`
}

// SubmitQuoteRequest is POST /api/quote: a quote plus the contact details
// needed to create the pending booking.
type SubmitQuoteRequest struct {
	QuoteInputRequest

	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`

	PreferredDate string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime string `json:"preferred_time" validate:"omitempty,datetime=15:04"`
	Notes         string `json:"notes"`
	PromoCode     string `json:"promo_code"`
}

// CustomExtrasRequest is POST /api/custom-extras.
type CustomExtrasRequest struct {
	Text         string `json:"text" validate:"required,max=2000"`
	Service      string `json:"service" validate:"omitempty,oneof=basic intermediate advanced commercial"`
	PropertyType string `json:"property_type"`
}
