package submit_booking

import (
	"errors"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/calendar"
)

var (
	// ErrMissingFields не заполнено одно из обязательных полей
	ErrMissingFields = errors.New("submit_booking: missing required fields")

	// ErrBadTimeFormat время не в формате HH:MM или не кратно 30 минутам
	ErrBadTimeFormat = errors.New("submit_booking: bad time format")

	// ErrBadDateFormat дата не в формате YYYY-MM-DD
	ErrBadDateFormat = errors.New("submit_booking: bad date format")

	// ErrBadEmailFormat некорректный email
	ErrBadEmailFormat = errors.New("submit_booking: bad email format")

	// ErrFieldTooLong одно из полей превышает допустимую длину
	ErrFieldTooLong = errors.New("submit_booking: field too long")

	// ErrBlackout дата закрыта администратором
	ErrBlackout = errors.New("submit_booking: date is blacked out")

	// ErrSlotTaken слот уже занят
	ErrSlotTaken = errors.New("submit_booking: slot already taken")
)

// Коды причин отказа, возвращаемые клиенту
const (
	CodeMissingFields  = "missing_fields"
	CodeBadTimeFormat  = "bad_time_format"
	CodeBadDateFormat  = "bad_date_format"
	CodeBadEmailFormat = "bad_email_format"
	CodeFieldTooLong   = "field_too_long"
	CodeOutsideHours   = calendar.ReasonOutsideHours
	CodeLunchBlocked   = calendar.ReasonLunchBlocked
	CodeWeekend        = calendar.ReasonWeekend
	CodeHoliday        = calendar.ReasonHoliday
	CodePastDate       = calendar.ReasonPastDate
	CodeBlackout       = "blackout"
	CodeSlotTaken      = "slot_taken"
	CodeStorageError   = "storage_error"

	outcomeSuccess = "success"
	outcomeUnknown = "unknown"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrMissingFields, CodeMissingFields},
	{ErrBadTimeFormat, CodeBadTimeFormat},
	{ErrBadDateFormat, CodeBadDateFormat},
	{ErrBadEmailFormat, CodeBadEmailFormat},
	{ErrFieldTooLong, CodeFieldTooLong},
	{calendar.ErrOutsideHours, CodeOutsideHours},
	{calendar.ErrLunchBlocked, CodeLunchBlocked},
	{calendar.ErrWeekend, CodeWeekend},
	{calendar.ErrHoliday, CodeHoliday},
	{calendar.ErrPastDate, CodePastDate},
	{ErrBlackout, CodeBlackout},
	{ErrSlotTaken, CodeSlotTaken},
	{domain.ErrStorage, CodeStorageError},
}

// Code возвращает код причины отказа; для nil - пустую строку
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return outcomeUnknown
}
