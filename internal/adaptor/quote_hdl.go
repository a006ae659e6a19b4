package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/request"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/usecase"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"go.uber.org/zap"
)

type QuoteHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewQuoteHandler(service usecase.BookingService, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		log:     log.With(zap.String("handler", "quote")),
	}
}

// SubmitQuote handles POST /api/quote (public)
func (h *QuoteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.service.SubmitQuote(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "submit quote")
		return
	}

	utils.ResponseCreated(w, "success", quote)
}

// EstimateCustomExtras handles POST /api/custom-extras (public)
func (h *QuoteHandler) EstimateCustomExtras(w http.ResponseWriter, r *http.Request) {
	var req request.CustomExtrasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// The estimator never fails the request: it degrades to the
	// heuristic price when the AI call is unavailable.
	estimate := h.service.EstimateCustomExtras(r.Context(), &req)

	utils.ResponseSuccess(w, "success", estimate)
}

// handleServiceError handles errors untuk quote operations
func (h *QuoteHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
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

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
