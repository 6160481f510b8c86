package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/service/adminauth"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

// AdminSecretHeader заголовок с секретом администратора
const AdminSecretHeader = "X-Admin-Secret"

const (
	codeInvalidRange = "bad_date_range"

	msgUnauthorized = "Unauthorized"
	msgInvalidRange = "Please provide from and to dates in YYYY-MM-DD format, from not after to."
)

type Handler struct {
	service ExportService
	logger  Logger
}

func NewHandler(service ExportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/export?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ExportRequest{
		From:        query.Get("from"),
		To:          query.Get("to"),
		AdminSecret: r.Header.Get(AdminSecretHeader),
	}

	result, err := h.service.Export(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, adminauth.ErrUnauthorized):
			h.logger.Warn("GET /admin/bookings/export - Unauthorized")
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrInvalidRange):
			h.logger.Warn("GET /admin/bookings/export - Invalid range from=%q to=%q", req.From, req.To)
			handlers.RespondBadRequest(w, msgInvalidRange, codeInvalidRange)

		default:
			h.logger.Error("GET /admin/bookings/export - Failed to export: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings/export - %d rows in %s", result.Rows, result.Filename)

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.logger.Warn("GET /admin/bookings/export - Failed to write body: %v", err)
	}
}
