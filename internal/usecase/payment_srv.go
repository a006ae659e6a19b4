package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/response"
	stripeclient "github.com/dustinvannguyen13-max/sparkandmend-api/internal/stripe"

	"go.uber.org/zap"
)

// ErrInvalidSignature rejects a webhook whose signature does not verify.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// StripeAPI is the slice of the Stripe client the orchestrator needs.
type StripeAPI interface {
	CreateCheckout(ctx context.Context, booking *entity.Booking) (*stripeclient.CheckoutResult, error)
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*stripeclient.SubscriptionState, error)
}

// WebhookResult acknowledges a processed (or deliberately ignored) event.
type WebhookResult struct {
	Received bool `json:"received"`
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, reference string) (*response.CheckoutResponse, error)
	CreatePortal(ctx context.Context, reference, email string) (*response.PortalResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
}

type paymentService struct {
	repo          *repository.Repository
	stripe        StripeAPI
	webhookSecret string
	log           *zap.Logger
}

func NewPaymentService(repo *repository.Repository, api StripeAPI, webhookSecret string, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:          repo,
		stripe:        api,
		webhookSecret: webhookSecret,
		log:           log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, reference string) (*response.CheckoutResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", reference)
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("cannot pay for a %s booking", booking.Status)
	}

	result, err := s.stripe.CreateCheckout(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}

	patch := map[string]any{
		"stripe_session_id": result.SessionID,
		"updated_at":        time.Now().UTC(),
	}
	if err := s.repo.Booking.Update(ctx, reference, patch); err != nil {
		// The session exists either way; the webhook will still find the
		// booking through its metadata reference.
		s.log.Warn("Failed to store checkout session id",
			zap.Error(err),
			zap.String("reference", reference),
		)
	}

	return &response.CheckoutResponse{SessionID: result.SessionID, URL: result.URL}, nil
}

func (s *paymentService) CreatePortal(ctx context.Context, reference, email string) (*response.PortalResponse, error) {
	booking, err := s.repo.Booking.Lookup(ctx, reference, email)
	if err != nil {
		return nil, fmt.Errorf("lookup booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", reference)
	}
	if booking.StripeCustomerID == "" {
		return nil, fmt.Errorf("cannot open billing portal: booking has no payment profile yet")
	}

	url, err := s.stripe.CreatePortalSession(ctx, booking.StripeCustomerID)
	if err != nil {
		return nil, fmt.Errorf("create portal session: %w", err)
	}

	return &response.PortalResponse{URL: url}, nil
}

// HandleWebhook verifies and dispatches a Stripe event. Soft gaps (no
// matching booking or series) acknowledge with received=true so Stripe
// stops retrying.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if !stripeclient.VerifySignature(payload, signature, s.webhookSecret) {
		return nil, ErrInvalidSignature
	}

	event, err := stripeclient.ParseEvent(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", event.Type))

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event, log)
	case "invoice.paid":
		return s.handleInvoicePaid(ctx, event, log)
	case "invoice.payment_failed":
		return s.handleInvoiceFailed(ctx, event, log)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(ctx, event, false, log)
	case "customer.subscription.deleted":
		return s.handleSubscriptionUpdated(ctx, event, true, log)
	default:
		log.Debug("Ignoring unhandled webhook event")
		return &WebhookResult{Received: true}, nil
	}
}

func (s *paymentService) handleCheckoutCompleted(ctx context.Context, event *stripeclient.Event, log *zap.Logger) (*WebhookResult, error) {
	session, err := stripeclient.ParseObject[stripeclient.CheckoutSessionEvent](event)
	if err != nil {
		return nil, err
	}

	reference := session.Metadata["booking_reference"]
	if reference == "" {
		log.Warn("Checkout session without booking reference")
		return &WebhookResult{Received: true}, nil
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find booking for checkout: %w", err)
	}
	if booking == nil {
		log.Warn("Checkout session for unknown booking", zap.String("reference", reference))
		return &WebhookResult{Received: true}, nil
	}

	switch session.Mode {
	case "payment":
		patch := map[string]any{
			"status":             entity.BookingStatusPaid,
			"amount_paid":        int(session.AmountTotal / 100),
			"stripe_session_id":  session.ID,
			"stripe_customer_id": session.Customer,
			"updated_at":         time.Now().UTC(),
		}

		updated, err := s.repo.Booking.UpdateIfPending(ctx, reference, patch)
		if err != nil {
			return nil, err
		}
		if !updated {
			log.Info("Booking already settled, checkout event ignored", zap.String("reference", reference))
			return &WebhookResult{Received: true}, nil
		}

		log.Info("Booking paid",
			zap.String("reference", reference),
			zap.Int64("amount_total", session.AmountTotal),
		)

	case "subscription":
		if session.Subscription == "" {
			log.Warn("Subscription checkout without subscription id", zap.String("reference", reference))
			return &WebhookResult{Received: true}, nil
		}

		patch := map[string]any{
			"stripe_subscription_id": session.Subscription,
			"stripe_customer_id":     session.Customer,
			"updated_at":             time.Now().UTC(),
		}

		if sub, err := s.stripe.GetSubscription(ctx, session.Subscription); err != nil {
			log.Warn("Failed to fetch subscription state, storing linkage only", zap.Error(err))
		} else if sub != nil {
			patch["subscription_status"] = sub.Status
			patch["current_period_end"] = formatPeriodEnd(sub.CurrentPeriodEnd)
		}

		// Subscription linkage lands on every row of the series.
		if err := s.patchBookingOrSeries(ctx, booking, patch); err != nil {
			return nil, err
		}

		log.Info("Subscription linked to booking series",
			zap.String("reference", reference),
			zap.String("subscription_id", session.Subscription),
		)
	}

	return &WebhookResult{Received: true}, nil
}

func (s *paymentService) handleInvoicePaid(ctx context.Context, event *stripeclient.Event, log *zap.Logger) (*WebhookResult, error) {
	invoice, err := stripeclient.ParseObject[stripeclient.InvoiceEvent](event)
	if err != nil {
		return nil, err
	}

	if invoice.Subscription == "" {
		log.Debug("Invoice without subscription, nothing to do")
		return &WebhookResult{Received: true}, nil
	}

	series, err := s.repo.Booking.FindBySubscription(ctx, invoice.Subscription)
	if err != nil {
		return nil, fmt.Errorf("find series for invoice: %w", err)
	}
	if len(series) == 0 {
		log.Info("Invoice for unknown subscription, nothing to do",
			zap.String("subscription_id", invoice.Subscription))
		return &WebhookResult{Received: true}, nil
	}

	// Earliest still-pending occurrence gets this payment. The conditional
	// update means a racing duplicate delivery moves on to the next row
	// instead of double-marking this one.
	today := time.Now().Format("2006-01-02")
	for _, booking := range series {
		if booking.Status != entity.BookingStatusPending {
			continue
		}
		if booking.PreferredDate != "" && booking.PreferredDate < today {
			continue
		}

		patch := map[string]any{
			"status":      entity.BookingStatusPaid,
			"amount_paid": int(invoice.AmountPaid / 100),
			"updated_at":  time.Now().UTC(),
		}

		updated, err := s.repo.Booking.UpdateIfPending(ctx, booking.Reference, patch)
		if err != nil {
			return nil, err
		}
		if updated {
			log.Info("Series occurrence paid",
				zap.String("reference", booking.Reference),
				zap.String("subscription_id", invoice.Subscription),
			)
			break
		}
	}

	// Refresh subscription state across the series.
	if sub, err := s.stripe.GetSubscription(ctx, invoice.Subscription); err != nil {
		log.Warn("Failed to refresh subscription state", zap.Error(err))
	} else if sub != nil {
		patch := map[string]any{
			"subscription_status": sub.Status,
			"current_period_end":  formatPeriodEnd(sub.CurrentPeriodEnd),
			"updated_at":          time.Now().UTC(),
		}
		if err := s.patchBookingOrSeries(ctx, series[0], patch); err != nil {
			log.Warn("Failed to propagate subscription state", zap.Error(err))
		}
	}

	return &WebhookResult{Received: true}, nil
}

func (s *paymentService) handleInvoiceFailed(ctx context.Context, event *stripeclient.Event, log *zap.Logger) (*WebhookResult, error) {
	invoice, err := stripeclient.ParseObject[stripeclient.InvoiceEvent](event)
	if err != nil {
		return nil, err
	}

	if invoice.Subscription == "" {
		return &WebhookResult{Received: true}, nil
	}

	series, err := s.repo.Booking.FindBySubscription(ctx, invoice.Subscription)
	if err != nil {
		return nil, fmt.Errorf("find series for failed invoice: %w", err)
	}
	if len(series) == 0 {
		return &WebhookResult{Received: true}, nil
	}

	patch := map[string]any{
		"subscription_status": "past_due",
		"updated_at":          time.Now().UTC(),
	}
	if err := s.patchBookingOrSeries(ctx, series[0], patch); err != nil {
		return nil, err
	}

	// Only rows still awaiting payment move to past_due.
	for _, booking := range series {
		if booking.Status != entity.BookingStatusPending {
			continue
		}
		if _, err := s.repo.Booking.UpdateIfPending(ctx, booking.Reference, map[string]any{
			"status":     entity.BookingStatusPastDue,
			"updated_at": time.Now().UTC(),
		}); err != nil {
			log.Warn("Failed to mark occurrence past_due",
				zap.Error(err),
				zap.String("reference", booking.Reference),
			)
		}
	}

	log.Info("Series marked past_due", zap.String("subscription_id", invoice.Subscription))
	return &WebhookResult{Received: true}, nil
}

func (s *paymentService) handleSubscriptionUpdated(ctx context.Context, event *stripeclient.Event, deleted bool, log *zap.Logger) (*WebhookResult, error) {
	sub, err := stripeclient.ParseObject[stripeclient.SubscriptionEvent](event)
	if err != nil {
		return nil, err
	}

	series, err := s.repo.Booking.FindBySubscription(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("find series for subscription: %w", err)
	}
	if len(series) == 0 {
		log.Info("Subscription event for unknown series, nothing to do",
			zap.String("subscription_id", sub.ID))
		return &WebhookResult{Received: true}, nil
	}

	patch := map[string]any{
		"subscription_status": sub.Status,
		"updated_at":          time.Now().UTC(),
	}
	if periodEnd := sub.PeriodEnd(); periodEnd > 0 {
		patch["current_period_end"] = formatPeriodEnd(periodEnd)
	}
	if deleted {
		patch["subscription_status"] = "cancelled"
		patch["status"] = entity.BookingStatusCancelled
	}

	if err := s.patchBookingOrSeries(ctx, series[0], patch); err != nil {
		return nil, err
	}

	log.Info("Subscription state propagated",
		zap.String("subscription_id", sub.ID),
		zap.Bool("deleted", deleted),
	)
	return &WebhookResult{Received: true}, nil
}

// patchBookingOrSeries applies a patch to the whole series when the booking
// belongs to one, otherwise just to the booking itself.
func (s *paymentService) patchBookingOrSeries(ctx context.Context, booking *entity.Booking, patch map[string]any) error {
	if booking.SeriesID != "" {
		return s.repo.Booking.UpdateSeries(ctx, booking.SeriesID, patch)
	}
	return s.repo.Booking.Update(ctx, booking.Reference, patch)
}

func formatPeriodEnd(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
