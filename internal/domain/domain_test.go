package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

func TestBooking_StartEnd(t *testing.T) {
	b := &Booking{Date: "2025-06-10", Time: "16:30"}

	start := b.Start(time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 16, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC), b.End(time.UTC))
	assert.Equal(t, "2025-06-10 16:30", b.SlotKey())
}

func TestHoliday_MatchesAnyYear(t *testing.T) {
	july4 := Holiday{Month: time.July, Day: 4}

	assert.True(t, july4.Matches("2025-07-04"))
	assert.True(t, july4.Matches("2031-07-04"))
	assert.False(t, july4.Matches("2025-07-05"))
}

func TestDayAvailability(t *testing.T) {
	day := NewDayAvailability("2025-06-10", []types.TimeString{"13:00", "09:30", "09:00"}, false)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "13:00"}, day.BookedTimes)
	assert.True(t, day.IsBooked("09:30"))
	assert.False(t, day.IsBooked("10:00"))
}

func TestBookingsRange_Contains(t *testing.T) {
	r := BookingsRange{From: "2025-06-01", To: "2025-06-30"}

	assert.True(t, r.Contains("2025-06-01"))
	assert.True(t, r.Contains("2025-06-30"))
	assert.False(t, r.Contains("2025-07-01"))
	assert.False(t, r.Contains("2025-05-31"))
}
