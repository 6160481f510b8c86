package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	submitBooking "github.com/m04kA/SMC-SchedulerService/internal/usecase/submit_booking"
)

const (
	codeInvalidBody = "bad_request"

	msgInvalidRequestBody = "Invalid request body."
	msgMissingFields      = "Missing required fields. Please ensure name, email, phone, date, and time are provided."
	msgBadTimeFormat      = "Please provide a time in HH:MM format on a half-hour boundary."
	msgBadDateFormat      = "Please provide a date in YYYY-MM-DD format."
	msgBadEmailFormat     = "Please provide a valid email address."
	msgFieldTooLong       = "One or more fields are too long."
	msgOutsideHours       = "Please select a time between 9:00 AM and 5:00 PM Mountain Time."
	msgLunchBlocked       = "The 12:00 PM - 1:00 PM lunch hour is not available for scheduling."
	msgWeekend            = "Scheduling is only available Monday through Friday."
	msgHoliday            = "Scheduling is not available on holidays."
	msgPastDate           = "Please select a date that is not in the past."
	msgBlackout           = "This date is currently unavailable for scheduling. Please select another day."
	msgSlotTaken          = "This time slot is already booked. Please choose another time."
)

var messages = map[string]string{
	submitBooking.CodeMissingFields:  msgMissingFields,
	submitBooking.CodeBadTimeFormat:  msgBadTimeFormat,
	submitBooking.CodeBadDateFormat:  msgBadDateFormat,
	submitBooking.CodeBadEmailFormat: msgBadEmailFormat,
	submitBooking.CodeFieldTooLong:   msgFieldTooLong,
	submitBooking.CodeOutsideHours:   msgOutsideHours,
	submitBooking.CodeLunchBlocked:   msgLunchBlocked,
	submitBooking.CodeWeekend:        msgWeekend,
	submitBooking.CodeHoliday:        msgHoliday,
	submitBooking.CodePastDate:       msgPastDate,
	submitBooking.CodeBlackout:       msgBlackout,
	submitBooking.CodeSlotTaken:      msgSlotTaken,
}

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody, codeInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation),
			errors.Is(err, domain.ErrPolicy),
			errors.Is(err, domain.ErrConflict):
			code := submitBooking.Code(err)
			msg, ok := messages[code]
			if !ok {
				h.logger.Error("POST /bookings - Unmapped rejection code %q: %v", code, err)
				handlers.RespondInternalError(w)
				return
			}
			h.logger.Warn("POST /bookings - Rejected %s %s: %s", req.Date, req.Time, code)
			handlers.RespondBadRequest(w, msg, code)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking %s %s: %v", req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, slot=%s", result.Booking.ID, result.Booking.SlotKey())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
