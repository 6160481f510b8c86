package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-SchedulerService/internal/usecase/get_availability"
)

const (
	codeMissingDate = "missing_date"
	codeBadDate     = "bad_date_format"

	msgMissingDate = "Date is required"
	msgInvalidDate = "Please provide a date in YYYY-MM-DD format."
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrMissingDate):
			h.logger.Warn("GET /availability - Missing date")
			handlers.RespondBadRequest(w, msgMissingDate, codeMissingDate)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate, codeBadDate)

		default:
			h.logger.Error("GET /availability - Failed to fetch availability for %q: %v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
