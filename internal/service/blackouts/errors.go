package blackouts

import "errors"

var (
	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("blackouts: invalid date")
)
