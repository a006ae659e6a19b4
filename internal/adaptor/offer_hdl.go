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

type OfferHandler struct {
	service usecase.OfferService
	log     *zap.Logger
}

func NewOfferHandler(service usecase.OfferService, log *zap.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		log:     log.With(zap.String("handler", "offer")),
	}
}

// GetOffer handles GET /api/admin/offer (admin only)
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.service.GetOffer(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get offer")
		return
	}

	utils.ResponseSuccess(w, "success", offer)
}

// SaveOffer handles PUT /api/admin/offer (admin only)
func (h *OfferHandler) SaveOffer(w http.ResponseWriter, r *http.Request) {
	var req request.SaveOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	offer, err := h.service.SaveOffer(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "save offer")
		return
	}

	utils.ResponseSuccess(w, "success", offer)
}

// handleServiceError handles errors untuk offer operations
func (h *OfferHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
