package submit_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// validated поля запроса после проверки формата
type validated struct {
	name  string
	email string
	phone string
	date  types.DateString
	time  types.TimeString
}

// validateRequest проверяет поля в фиксированном порядке:
// обязательные поля, время, дата, email, длина полей
func validateRequest(req *Request, isAligned func(types.TimeString) bool) (*validated, error) {
	v := &validated{
		name:  strings.TrimSpace(req.Name),
		email: strings.TrimSpace(req.Email),
		phone: strings.TrimSpace(req.Phone),
	}
	rawDate := strings.TrimSpace(req.Date)
	rawTime := strings.TrimSpace(req.Time)

	if v.name == "" || v.email == "" || v.phone == "" || rawDate == "" || rawTime == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrMissingFields)
	}

	t, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrBadTimeFormat, err)
	}
	if !isAligned(t) {
		return nil, fmt.Errorf("%w: %w: %s is not on a half-hour boundary", domain.ErrValidation, ErrBadTimeFormat, t)
	}
	v.time = t

	d, err := types.NewDateStringFromString(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrBadDateFormat, err)
	}
	v.date = d

	if !isValidEmail(v.email) {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrValidation, ErrBadEmailFormat, v.email)
	}

	if len(v.name) > domain.MaxNameLength || len(v.email) > domain.MaxEmailLength || len(v.phone) > domain.MaxPhoneLength {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrFieldTooLong)
	}

	return v, nil
}

// isValidEmail принимает только голый адрес без отображаемого имени
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	if addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// containsTime проверяет, занят ли слот
func containsTime(booked []types.TimeString, t types.TimeString) bool {
	for _, b := range booked {
		if b == t {
			return true
		}
	}
	return false
}
