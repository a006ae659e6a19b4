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

type CalendarHandler struct {
	service usecase.SyncService
	log     *zap.Logger
}

func NewCalendarHandler(service usecase.SyncService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log.With(zap.String("handler", "calendar")),
	}
}

// Status handles GET /api/google-calendar/status (admin only)
func (h *CalendarHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get calendar status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// Connect handles POST /api/google-calendar/connect (admin only)
func (h *CalendarHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req request.ConnectCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Connect(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "connect calendar")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Sync handles POST /api/google-calendar/sync (admin only)
func (h *CalendarHandler) Sync(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Sync(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "sync calendar")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// handleServiceError handles errors untuk calendar operations
func (h *CalendarHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not connected"):
		h.log.Warn(operation+" failed - calendar not connected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

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
