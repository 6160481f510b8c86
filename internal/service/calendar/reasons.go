package calendar

import "errors"

// Reason codes reported to clients for policy rejections
const (
	ReasonOutsideHours = "outside_hours"
	ReasonLunchBlocked = "lunch_blocked"
	ReasonWeekend      = "weekend"
	ReasonHoliday      = "holiday"
	ReasonPastDate     = "past_date"
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrOutsideHours, ReasonOutsideHours},
	{ErrLunchBlocked, ReasonLunchBlocked},
	{ErrWeekend, ReasonWeekend},
	{ErrHoliday, ReasonHoliday},
	{ErrPastDate, ReasonPastDate},
}

// Reason maps an error returned by Check or CheckDate to its reason code.
// Returns "" for nil or unrelated errors.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}
