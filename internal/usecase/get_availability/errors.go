package get_availability

import "errors"

var (
	// ErrMissingDate дата не передана
	ErrMissingDate = errors.New("get_availability: date is required")

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("get_availability: invalid date")
)
