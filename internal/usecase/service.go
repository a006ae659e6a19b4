package usecase

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/calendar"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/pricing"
	stripeclient "github.com/dustinvannguyen13-max/sparkandmend-api/internal/stripe"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Payment PaymentService
	Sync    SyncService
	Offer   OfferService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	estimator := pricing.NewEstimator(config.Pricing, config.OpenAI, log)
	stripeAPI := stripeclient.NewClient(config.Stripe, config.App.BaseURL, log)

	tokens := calendar.NewTokenSource(config.Google, repo.Integration, log)
	calendarAPI := calendar.NewClient(config.Google.CalendarID, tokens, log)

	return &Service{
		Booking: NewBookingService(repo, estimator, log),
		Payment: NewPaymentService(repo, stripeAPI, config.Stripe.WebhookSecret, log),
		Sync:    NewSyncService(repo, calendarAPI, tokens, config.Google, log),
		Offer:   NewOfferService(repo, log),
	}
}
