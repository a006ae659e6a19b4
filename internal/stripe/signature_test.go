package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test_secret"

func sign(t *testing.T, payload []byte, timestamp, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.%s", timestamp, payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.paid"}`)
	sig := sign(t, payload, "1700000000", testSecret)
	header := "t=1700000000,v1=" + sig

	assert.True(t, VerifySignature(payload, header, testSecret))
}

func TestVerifySignature_StaleTimestampStillAccepted(t *testing.T) {
	// Acceptance is signature-only; an old but correctly signed header passes.
	payload := []byte(`{"id":"evt_1"}`)
	sig := sign(t, payload, "1", testSecret)
	header := "t=1,v1=" + sig

	assert.True(t, VerifySignature(payload, header, testSecret))
}

func TestVerifySignature_MultipleV1Candidates(t *testing.T) {
	// During secret rotation Stripe sends several v1 entries; any match passes.
	payload := []byte(`{"id":"evt_1"}`)
	good := sign(t, payload, "1700000000", testSecret)
	header := "t=1700000000,v1=" + sign(t, payload, "1700000000", "whsec_old") + ",v1=" + good

	assert.True(t, VerifySignature(payload, header, testSecret))
}

func TestVerifySignature_Rejections(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	sig := sign(t, payload, "1700000000", testSecret)

	tests := []struct {
		name    string
		payload []byte
		header  string
		secret  string
	}{
		{name: "empty header", payload: payload, header: "", secret: testSecret},
		{name: "empty secret", payload: payload, header: "t=1700000000,v1=" + sig, secret: ""},
		{name: "missing timestamp", payload: payload, header: "v1=" + sig, secret: testSecret},
		{name: "missing v1", payload: payload, header: "t=1700000000", secret: testSecret},
		{name: "wrong secret", payload: payload, header: "t=1700000000,v1=" + sig, secret: "whsec_other"},
		{name: "tampered payload", payload: []byte(`{"id":"evt_2"}`), header: "t=1700000000,v1=" + sig, secret: testSecret},
		{name: "tampered timestamp", payload: payload, header: "t=1700000001,v1=" + sig, secret: testSecret},
		{name: "garbage header", payload: payload, header: "not-a-header", secret: testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifySignature(tt.payload, tt.header, tt.secret))
		})
	}
}

func TestVerifySignature_HeaderWhitespaceTolerated(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	sig := sign(t, payload, "1700000000", testSecret)
	header := "t=1700000000, v1=" + sig

	assert.True(t, VerifySignature(payload, header, testSecret))
}

func TestParseEvent(t *testing.T) {
	t.Run("valid envelope", func(t *testing.T) {
		event, err := ParseEvent([]byte(`{"id":"evt_1","type":"invoice.paid","data":{"object":{"id":"in_1","subscription":"sub_1","amount_paid":9500}}}`))

		assert.NoError(t, err)
		assert.Equal(t, "invoice.paid", event.Type)

		invoice, err := ParseObject[InvoiceEvent](event)
		assert.NoError(t, err)
		assert.Equal(t, "sub_1", invoice.Subscription)
		assert.Equal(t, int64(9500), invoice.AmountPaid)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{"id":"evt_1"}`))
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseEvent([]byte("nope"))
		assert.Error(t, err)
	})
}

func TestSubscriptionEventPeriodEnd(t *testing.T) {
	t.Run("top level wins", func(t *testing.T) {
		var sub SubscriptionEvent
		sub.CurrentPeriodEnd = 1000
		sub.Items.Data = []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
		}{{CurrentPeriodEnd: 2000}}

		assert.Equal(t, int64(1000), sub.PeriodEnd())
	})

	t.Run("falls back to first item", func(t *testing.T) {
		var sub SubscriptionEvent
		sub.Items.Data = []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
		}{{CurrentPeriodEnd: 2000}}

		assert.Equal(t, int64(2000), sub.PeriodEnd())
	})

	t.Run("nothing known", func(t *testing.T) {
		var sub SubscriptionEvent
		assert.Zero(t, sub.PeriodEnd())
	})
}
