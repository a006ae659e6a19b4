package adaptor

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Quote    *QuoteHandler
	Booking  *BookingHandler
	Stripe   *StripeHandler
	Calendar *CalendarHandler
	Offer    *OfferHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Quote:    NewQuoteHandler(service.Booking, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Stripe:   NewStripeHandler(service.Payment, log),
		Calendar: NewCalendarHandler(service.Sync, log),
		Offer:    NewOfferHandler(service.Offer, log),
	}
}
