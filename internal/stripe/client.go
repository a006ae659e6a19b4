package stripe

import (
	"context"
	"fmt"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// Client wraps the Stripe API for checkout, billing portal and
// subscription retrieval. One instance per process.
type Client struct {
	sc       *stripe.Client
	currency string
	baseURL  string
	log      *zap.Logger
}

func NewClient(cfg utils.StripeConfig, baseURL string, log *zap.Logger) *Client {
	return &Client{
		sc:       stripe.NewClient(cfg.SecretKey, nil),
		currency: cfg.Currency,
		baseURL:  baseURL,
		log:      log.With(zap.String("client", "stripe")),
	}
}

// CheckoutResult is what the browser needs to redirect to Stripe.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckout opens a Checkout session for a booking. One-time
// frequencies pay once, recurring frequencies start a subscription whose
// billing interval mirrors the visit cadence.
func (c *Client) CreateCheckout(ctx context.Context, booking *entity.Booking) (*CheckoutResult, error) {
	amountPence := int64(booking.PerVisitPrice) * 100

	lineItem := &stripe.CheckoutSessionCreateLineItemParams{
		PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
			Currency:   stripe.String(c.currency),
			UnitAmount: stripe.Int64(amountPence),
			ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("%s — %s", booking.ServiceLabel, booking.PropertySummary)),
			},
		},
		Quantity: stripe.Int64(1),
	}

	mode := "payment"
	if booking.Frequency != entity.FrequencyOneTime {
		mode = "subscription"
		interval, count := billingInterval(booking.Frequency)
		lineItem.PriceData.Recurring = &stripe.CheckoutSessionCreateLineItemPriceDataRecurringParams{
			Interval:      stripe.String(interval),
			IntervalCount: stripe.Int64(count),
		}
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:          stripe.String(mode),
		LineItems:     []*stripe.CheckoutSessionCreateLineItemParams{lineItem},
		CustomerEmail: stripe.String(booking.Email),
		SuccessURL:    stripe.String(c.baseURL + "/quote-result?paid=1&reference=" + booking.Reference),
		CancelURL:     stripe.String(c.baseURL + "/quote-result?paid=0&reference=" + booking.Reference),
		Metadata: map[string]string{
			"booking_reference": booking.Reference,
		},
	}

	session, err := c.sc.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		c.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("mode", mode),
		)
		return nil, fmt.Errorf("create checkout session for %s: %w", booking.Reference, err)
	}

	c.log.Info("Checkout session created",
		zap.String("reference", booking.Reference),
		zap.String("session_id", session.ID),
		zap.String("mode", mode),
	)

	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// CreatePortalSession opens a Billing Portal session for subscription
// self-service.
func (c *Client) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	params := &stripe.BillingPortalSessionCreateParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(c.baseURL + "/my-booking"),
	}

	session, err := c.sc.V1BillingPortalSessions.Create(ctx, params)
	if err != nil {
		c.log.Error("Failed to create billing portal session",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return "", fmt.Errorf("create portal session for %s: %w", customerID, err)
	}

	return session.URL, nil
}

// SubscriptionState is the subset of a Stripe subscription the bookings
// table tracks.
type SubscriptionState struct {
	ID               string
	CustomerID       string
	Status           string
	CurrentPeriodEnd int64
}

// GetSubscription retrieves the current subscription state.
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionState, error) {
	sub, err := c.sc.V1Subscriptions.Retrieve(ctx, subscriptionID, nil)
	if err != nil {
		c.log.Error("Failed to retrieve subscription",
			zap.Error(err),
			zap.String("subscription_id", subscriptionID),
		)
		return nil, fmt.Errorf("retrieve subscription %s: %w", subscriptionID, err)
	}

	state := &SubscriptionState{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.Customer != nil {
		state.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		state.CurrentPeriodEnd = sub.Items.Data[0].CurrentPeriodEnd
	}

	return state, nil
}

func billingInterval(frequency entity.Frequency) (string, int64) {
	switch frequency {
	case entity.FrequencyWeekly:
		return "week", 1
	case entity.FrequencyBiWeekly:
		return "week", 2
	case entity.FrequencyMonthly:
		return "month", 1
	default:
		return "month", 1
	}
}
