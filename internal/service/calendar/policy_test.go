package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

func newDefaultPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(DefaultConfig())
	require.NoError(t, err)
	return p
}

func TestPolicy_Catalog(t *testing.T) {
	p := newDefaultPolicy(t)

	expected := []types.TimeString{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}
	assert.Equal(t, expected, p.Catalog())

	// Каталог - копия, изменения снаружи не влияют на политику
	c := p.Catalog()
	c[0] = "08:00"
	assert.Equal(t, types.TimeString("09:00"), p.Catalog()[0])
}

func TestPolicy_CatalogSlotsAreValid(t *testing.T) {
	p := newDefaultPolicy(t)

	for _, slot := range p.Catalog() {
		assert.True(t, p.IsValidSlot("2025-06-10", slot), slot)
		assert.NoError(t, p.Check("2025-06-10", slot, ""), slot)
	}
}

func TestPolicy_BusinessHours(t *testing.T) {
	p := newDefaultPolicy(t)

	cases := map[types.TimeString]bool{
		"08:30": false,
		"09:00": true,
		"16:30": true,
		"17:00": false,
		"23:30": false,
		"00:00": false,
	}
	for tm, want := range cases {
		assert.Equal(t, want, p.IsWithinBusinessHours(tm), tm)
	}
}

func TestPolicy_Lunch(t *testing.T) {
	p := newDefaultPolicy(t)

	assert.True(t, p.IsLunchBlocked("12:00"))
	assert.True(t, p.IsLunchBlocked("12:30"))
	assert.False(t, p.IsLunchBlocked("11:30"))
	assert.False(t, p.IsLunchBlocked("13:00"))
}

func TestPolicy_Weekend(t *testing.T) {
	p := newDefaultPolicy(t)

	assert.False(t, p.IsBusinessDay("2025-06-14")) // суббота
	assert.False(t, p.IsBusinessDay("2025-06-15")) // воскресенье
	assert.True(t, p.IsBusinessDay("2025-06-16"))  // понедельник
}

func TestPolicy_Holidays(t *testing.T) {
	p := newDefaultPolicy(t)

	for _, d := range []types.DateString{"2025-01-01", "2025-07-04", "2025-12-25", "2030-07-04"} {
		assert.True(t, p.IsHoliday(d), d)
	}
	assert.False(t, p.IsHoliday("2025-07-03"))

	name, ok := p.HolidayName("2025-12-25")
	assert.True(t, ok)
	assert.Equal(t, "Christmas Day", name)
}

func TestPolicy_ExtraHolidays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Holidays = append(cfg.Holidays, domain.Holiday{Month: time.November, Day: 11, Name: "Veterans Day"})

	p, err := NewPolicy(cfg)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Check("2025-11-11", "10:00", ""), ErrHoliday)
}

func TestPolicy_CheckOrder(t *testing.T) {
	p := newDefaultPolicy(t)

	// Суббота + обед: обед проверяется раньше выходного
	assert.ErrorIs(t, p.Check("2025-06-14", "12:00", ""), ErrLunchBlocked)
	// Праздник в субботу (2026-07-04): выходной раньше праздника
	assert.ErrorIs(t, p.Check("2026-07-04", "10:00", ""), ErrWeekend)
	// Вне часов работы проверяется первым
	assert.ErrorIs(t, p.Check("2025-07-04", "18:00", ""), ErrOutsideHours)

	assert.ErrorIs(t, p.Check("2025-07-04", "10:00", ""), ErrHoliday)
	assert.ErrorIs(t, p.Check("2025-06-10", "12:00", ""), ErrLunchBlocked)
	assert.ErrorIs(t, p.Check("2025-06-14", "10:00", ""), ErrWeekend)
}

func TestPolicy_InvalidDatesNeverPass(t *testing.T) {
	p := newDefaultPolicy(t)

	// Все выходные и праздники 2025 года отклоняются для любого слота каталога
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		date := types.NewDateString(d)
		if p.IsBusinessDay(date) && !p.IsHoliday(date) {
			continue
		}
		for _, slot := range p.Catalog() {
			assert.Error(t, p.Check(date, slot, ""), "%s %s", date, slot)
		}
	}
}

func TestPolicy_PastDates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RejectPastDates = true
	p, err := NewPolicy(cfg)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Check("2025-06-10", "10:00", "2025-06-11"), ErrPastDate)
	assert.NoError(t, p.Check("2025-06-11", "10:00", "2025-06-11"))

	// По умолчанию прошедшие даты разрешены
	assert.NoError(t, newDefaultPolicy(t).Check("2025-06-10", "10:00", "2025-06-11"))
}

func TestPolicy_SlotAlignment(t *testing.T) {
	p := newDefaultPolicy(t)

	assert.True(t, p.IsSlotAligned("10:00"))
	assert.True(t, p.IsSlotAligned("10:30"))
	assert.False(t, p.IsSlotAligned("10:15"))
	assert.False(t, p.IsSlotAligned("1000"))
}

func TestPolicy_Today(t *testing.T) {
	p := newDefaultPolicy(t)

	// 2025-06-11 03:00 UTC - еще 10 июня в America/Denver
	now := time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, types.DateString("2025-06-10"), p.Today(now))
}

func TestNewPolicy_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenHour, cfg.CloseHour = 17, 9
	_, err := NewPolicy(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.LunchStart, cfg.LunchEnd = "13:00", "12:00"
	_, err = NewPolicy(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Holidays = []domain.Holiday{{Month: 13, Day: 1}}
	_, err = NewPolicy(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReason(t *testing.T) {
	p, err := NewPolicy(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, ReasonWeekend, Reason(p.CheckDate("2025-06-14", "")))
	assert.Equal(t, ReasonHoliday, Reason(p.CheckDate("2025-12-25", "")))
	assert.Equal(t, ReasonLunchBlocked, Reason(p.Check("2025-06-10", "12:30", "")))
	assert.Equal(t, ReasonOutsideHours, Reason(p.Check("2025-06-10", "17:00", "")))
	assert.Equal(t, "", Reason(nil))
	assert.Equal(t, "", Reason(ErrInvalidConfig))
}
