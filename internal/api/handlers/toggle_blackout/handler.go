package toggle_blackout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/service/adminauth"
	"github.com/m04kA/SMC-SchedulerService/internal/service/blackouts"
)

const (
	codeInvalidBody = "bad_request"
	codeInvalidDate = "bad_date_format"

	msgInvalidRequestBody = "Invalid request body."
	msgUnauthorized       = "Unauthorized"
	msgInvalidDate        = "Please provide a date in YYYY-MM-DD format."
)

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ToggleBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody, codeInvalidBody)
		return
	}

	result, err := h.service.Toggle(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, adminauth.ErrUnauthorized):
			h.logger.Warn("POST /admin/blackouts - Unauthorized")
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, blackouts.ErrInvalidDate):
			h.logger.Warn("POST /admin/blackouts - Invalid date %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate, codeInvalidDate)

		default:
			h.logger.Error("POST /admin/blackouts - Failed to toggle %q: %v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blackouts - %s isBlackout=%t", result.Date, result.IsBlackout)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
