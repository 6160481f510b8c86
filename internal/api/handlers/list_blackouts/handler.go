package list_blackouts

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
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

// Handle GET /api/v1/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /blackouts - Failed to list blackout dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDates(dates))
}
