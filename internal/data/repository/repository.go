package repository

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/supabase"

	"go.uber.org/zap"
)

type Repository struct {
	Booking      BookingRepository
	BookingEvent BookingEventRepository
	Offer        OfferRepository
	Integration  IntegrationRepository
}

func NewRepository(db *supabase.Client, log *zap.Logger) *Repository {
	return &Repository{
		Booking:      NewBookingRepository(db, log),
		BookingEvent: NewBookingEventRepository(db, log),
		Offer:        NewOfferRepository(db, log),
		Integration:  NewIntegrationRepository(db, log),
	}
}
