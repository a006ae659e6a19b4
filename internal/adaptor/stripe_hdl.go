package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/request"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/usecase"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"go.uber.org/zap"
)

// Stripe webhook payloads stay well under this.
const maxWebhookBody = 1 << 20

type StripeHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewStripeHandler(service usecase.PaymentService, log *zap.Logger) *StripeHandler {
	return &StripeHandler{
		service: service,
		log:     log.With(zap.String("handler", "stripe")),
	}
}

// Checkout handles POST /api/stripe/checkout-booking (public)
func (h *StripeHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkout, err := h.service.CreateCheckout(r.Context(), req.Reference)
	if err != nil {
		h.handleServiceError(w, err, "create checkout")
		return
	}

	utils.ResponseSuccess(w, "success", checkout)
}

// Portal handles POST /api/stripe/portal (public, reference+email acts as the credential)
func (h *StripeHandler) Portal(w http.ResponseWriter, r *http.Request) {
	var req request.PortalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	portal, err := h.service.CreatePortal(r.Context(), req.Reference, req.Email)
	if err != nil {
		h.handleServiceError(w, err, "create portal session")
		return
	}

	utils.ResponseSuccess(w, "success", portal)
}

// Webhook handles POST /api/stripe/webhook. The raw body is needed for
// signature verification, so it is read before any decoding.
func (h *StripeHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unreadable request body", nil)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		utils.ResponseBadRequest(w, "Missing stripe-signature header", nil)
		return
	}

	result, err := h.service.HandleWebhook(r.Context(), payload, signature)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSignature) {
			h.log.Warn("Webhook signature verification failed")
			utils.ResponseBadRequest(w, "Invalid signature", nil)
			return
		}
		h.handleServiceError(w, err, "process webhook")
		return
	}

	// Stripe only needs the 2xx; the body is for operators reading logs.
	utils.ResponseSuccess(w, "success", result)
}

// handleServiceError handles errors untuk stripe operations
func (h *StripeHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
