package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Holiday is an observed date recurring every year (month + day only)
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

// Matches returns true if date falls on the holiday in any year
func (h Holiday) Matches(date types.DateString) bool {
	return date.Month() == h.Month && date.Day() == h.Day
}

// DefaultHolidays fixed holidays observed by the calendar
var DefaultHolidays = []Holiday{
	{Month: time.January, Day: 1, Name: "New Year's Day"},
	{Month: time.July, Day: 4, Name: "Independence Day"},
	{Month: time.December, Day: 25, Name: "Christmas Day"},
}

// BlackoutDate is a date administratively marked fully unavailable
type BlackoutDate struct {
	Date      types.DateString
	CreatedAt time.Time
}

// DayAvailability is derived from committed bookings and the blackout flag of a date
type DayAvailability struct {
	Date        types.DateString
	BookedTimes []types.TimeString
	IsBlackout  bool
}

// NewDayAvailability sorts booked times ascending
func NewDayAvailability(date types.DateString, booked []types.TimeString, blackout bool) *DayAvailability {
	sorted := append([]types.TimeString(nil), booked...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].IsBefore(sorted[j]) })
	return &DayAvailability{Date: date, BookedTimes: sorted, IsBlackout: blackout}
}

// IsBooked returns true if t is already taken
func (d *DayAvailability) IsBooked(t types.TimeString) bool {
	for _, booked := range d.BookedTimes {
		if booked == t {
			return true
		}
	}
	return false
}

// SlotStatus availability of a single catalog slot
type SlotStatus struct {
	Time      types.TimeString
	Available bool
	Reason    string // empty when available
}

// Slot unavailability reasons shown to clients
const (
	SlotReasonBooked   = "booked"
	SlotReasonBlackout = "blackout"
)
