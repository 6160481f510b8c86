package domain

import "errors"

// Error categories. Specific reasons are joined with a category via
// fmt.Errorf("%w: %w", ErrPolicy, calendar.ErrWeekend) so callers can match either.
var (
	ErrValidation = errors.New("validation error")
	ErrPolicy     = errors.New("policy error")
	ErrConflict   = errors.New("conflict error")
	ErrStorage    = errors.New("storage error")
)
