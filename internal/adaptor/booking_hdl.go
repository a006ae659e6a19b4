package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/request"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/usecase"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Lookup handles GET /api/bookings/lookup (public)
func (h *BookingHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	reference := query.Get("reference")
	email := query.Get("email")

	if reference == "" || email == "" {
		utils.ResponseBadRequest(w, "Reference and email are required", nil)
		return
	}

	booking, err := h.service.Lookup(r.Context(), reference, email)
	if err != nil {
		h.handleServiceError(w, err, "lookup booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Search handles GET /api/bookings/search (public)
func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := query.Get("email")
	postcode := query.Get("postcode")

	if email == "" || postcode == "" {
		utils.ResponseBadRequest(w, "Email and postcode are required", nil)
		return
	}

	bookings, err := h.service.Search(r.Context(), email, postcode)
	if err != nil {
		h.handleServiceError(w, err, "search bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// SelfUpdate handles PATCH /api/bookings/update (public, reference+email acts as the credential)
func (h *BookingHandler) SelfUpdate(w http.ResponseWriter, r *http.Request) {
	var req request.SelfUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SelfUpdate(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ==================== ADMIN METHODS ====================

// AdminList handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	status := query.Get("status")
	fromDate := query.Get("from")
	toDate := query.Get("to")
	page := utils.ParseInt(query.Get("page"), 1)
	perPage := utils.ParseInt(query.Get("per_page"), 20)

	bookings, err := h.service.AdminList(r.Context(), status, fromDate, toDate, page, perPage)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// AdminGet handles GET /api/admin/bookings/{reference} (admin only)
func (h *BookingHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.service.AdminGet(r.Context(), reference)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AdminUpdate handles PATCH /api/admin/bookings/{reference} (admin only)
func (h *BookingHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	var req request.AdminUpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.AdminUpdate(r.Context(), reference, &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AdminDelete handles DELETE /api/admin/bookings/{reference} (admin only)
func (h *BookingHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	if err := h.service.AdminDelete(r.Context(), reference); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError handles errors untuk booking operations
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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
