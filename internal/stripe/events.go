package stripe

import (
	"encoding/json"
	"fmt"
)

// Webhook payloads are parsed into explicit per-event types at the
// boundary instead of walking loose maps.

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutSessionEvent is the object of checkout.session.completed.
type CheckoutSessionEvent struct {
	ID           string            `json:"id"`
	Mode         string            `json:"mode"`
	AmountTotal  int64             `json:"amount_total"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

// InvoiceEvent is the object of invoice.paid / invoice.payment_failed.
type InvoiceEvent struct {
	ID           string `json:"id"`
	Subscription string `json:"subscription"`
	Status       string `json:"status"`
	AmountPaid   int64  `json:"amount_paid"`
}

// SubscriptionEvent is the object of customer.subscription.updated/deleted.
// Depending on the account API version, current_period_end lives either on
// the subscription or on its first item, so both are parsed.
type SubscriptionEvent struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

// PeriodEnd resolves the period end across payload shapes.
func (s *SubscriptionEvent) PeriodEnd() int64 {
	if s.CurrentPeriodEnd > 0 {
		return s.CurrentPeriodEnd
	}
	if len(s.Items.Data) > 0 {
		return s.Items.Data[0].CurrentPeriodEnd
	}
	return 0
}

// ParseEvent decodes the webhook envelope.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("parse webhook event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook event missing type")
	}
	return &event, nil
}

// ParseObject decodes the event's inner object into the per-event type.
func ParseObject[T any](event *Event) (*T, error) {
	var obj T
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
		return nil, fmt.Errorf("parse %s object: %w", event.Type, err)
	}
	return &obj, nil
}
