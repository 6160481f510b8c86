package calendar

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

var (
	// ErrOutsideHours время вне рабочих часов
	ErrOutsideHours = errors.New("calendar: outside business hours")

	// ErrLunchBlocked время попадает на обеденный перерыв
	ErrLunchBlocked = errors.New("calendar: lunch break")

	// ErrWeekend дата выпадает на субботу или воскресенье
	ErrWeekend = errors.New("calendar: weekend")

	// ErrHoliday дата является праздником
	ErrHoliday = errors.New("calendar: holiday")

	// ErrPastDate дата раньше сегодняшнего дня
	ErrPastDate = errors.New("calendar: date is in the past")

	// ErrMisaligned время не кратно длительности слота
	ErrMisaligned = errors.New("calendar: time is not aligned to slot boundary")

	// ErrInvalidConfig некорректная конфигурация календаря
	ErrInvalidConfig = errors.New("calendar: invalid config")
)

// Config параметры рабочего календаря
type Config struct {
	OpenHour        int
	CloseHour       int
	LunchStart      types.TimeString
	LunchEnd        types.TimeString
	Holidays        []domain.Holiday
	RejectPastDates bool
	Location        *time.Location
}

// DefaultConfig 09:00-17:00, обед 12:00-13:00, America/Denver, фиксированные праздники
func DefaultConfig() Config {
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Config{
		OpenHour:   domain.DefaultOpenHour,
		CloseHour:  domain.DefaultCloseHour,
		LunchStart: domain.DefaultLunchStart,
		LunchEnd:   domain.DefaultLunchEnd,
		Holidays:   append([]domain.Holiday(nil), domain.DefaultHolidays...),
		Location:   loc,
	}
}

// Policy stateless set of scheduling predicates
// Used by both the availability read and the booking submit so they can never disagree.
type Policy struct {
	openMinutes     int
	closeMinutes    int
	lunchStart      int
	lunchEnd        int
	holidays        []domain.Holiday
	rejectPastDates bool
	location        *time.Location
	catalog         []types.TimeString
}

// NewPolicy validates cfg and precomputes the slot catalog
func NewPolicy(cfg Config) (*Policy, error) {
	if cfg.OpenHour < 0 || cfg.CloseHour > 24 || cfg.OpenHour >= cfg.CloseHour {
		return nil, fmt.Errorf("%w: open hour %d must be before close hour %d", ErrInvalidConfig, cfg.OpenHour, cfg.CloseHour)
	}
	if err := cfg.LunchStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: lunch start: %v", ErrInvalidConfig, err)
	}
	if err := cfg.LunchEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: lunch end: %v", ErrInvalidConfig, err)
	}
	if !cfg.LunchStart.IsBefore(cfg.LunchEnd) {
		return nil, fmt.Errorf("%w: lunch start %s must be before lunch end %s", ErrInvalidConfig, cfg.LunchStart, cfg.LunchEnd)
	}
	for _, h := range cfg.Holidays {
		if h.Month < time.January || h.Month > time.December || h.Day < 1 || h.Day > 31 {
			return nil, fmt.Errorf("%w: holiday %q has invalid month/day %d/%d", ErrInvalidConfig, h.Name, h.Month, h.Day)
		}
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	p := &Policy{
		openMinutes:     cfg.OpenHour * 60,
		closeMinutes:    cfg.CloseHour * 60,
		lunchStart:      cfg.LunchStart.Minutes(),
		lunchEnd:        cfg.LunchEnd.Minutes(),
		holidays:        append([]domain.Holiday(nil), cfg.Holidays...),
		rejectPastDates: cfg.RejectPastDates,
		location:        loc,
	}
	p.catalog = p.buildCatalog()

	return p, nil
}

// IsBusinessDay returns false for Saturday and Sunday (weekday computed in UTC)
func (p *Policy) IsBusinessDay(date types.DateString) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// IsHoliday matches the date against configured holidays by month and day
func (p *Policy) IsHoliday(date types.DateString) bool {
	_, ok := p.HolidayName(date)
	return ok
}

// HolidayName returns the holiday observed on date
func (p *Policy) HolidayName(date types.DateString) (string, bool) {
	for _, h := range p.holidays {
		if h.Matches(date) {
			return h.Name, true
		}
	}
	return "", false
}

// IsWithinBusinessHours start time in [open, close)
func (p *Policy) IsWithinBusinessHours(t types.TimeString) bool {
	m := t.Minutes()
	return m >= p.openMinutes && m < p.closeMinutes
}

// IsLunchBlocked start time in [lunchStart, lunchEnd)
func (p *Policy) IsLunchBlocked(t types.TimeString) bool {
	m := t.Minutes()
	return m >= p.lunchStart && m < p.lunchEnd
}

// IsSlotAligned true for well-formed times on a slot boundary (:00, :30)
func (p *Policy) IsSlotAligned(t types.TimeString) bool {
	if t.Validate() != nil {
		return false
	}
	return t.Minute()%domain.SlotDurationMinutes == 0
}

// IsValidSlot business day, not a holiday, within hours and not lunch
func (p *Policy) IsValidSlot(date types.DateString, t types.TimeString) bool {
	return p.IsBusinessDay(date) &&
		!p.IsHoliday(date) &&
		p.IsWithinBusinessHours(t) &&
		!p.IsLunchBlocked(t)
}

// Check returns the first failing rule for (date, t)
// Порядок фиксирован: часы работы, обед, выходной, праздник, прошедшая дата
func (p *Policy) Check(date types.DateString, t types.TimeString, today types.DateString) error {
	if !p.IsWithinBusinessHours(t) {
		return ErrOutsideHours
	}
	if p.IsLunchBlocked(t) {
		return ErrLunchBlocked
	}
	return p.CheckDate(date, today)
}

// CheckDate applies only the date rules (weekend, holiday, past date)
func (p *Policy) CheckDate(date types.DateString, today types.DateString) error {
	if !p.IsBusinessDay(date) {
		return ErrWeekend
	}
	if p.IsHoliday(date) {
		return ErrHoliday
	}
	if p.rejectPastDates && !today.IsZero() && date.IsBefore(today) {
		return ErrPastDate
	}
	return nil
}

// Today returns the current calendar date in the policy time zone
func (p *Policy) Today(now time.Time) types.DateString {
	return types.NewDateString(now.In(p.location))
}

// Location time zone of the business calendar
func (p *Policy) Location() *time.Location {
	return p.location
}

// Catalog ordered slot start times within business hours excluding lunch
func (p *Policy) Catalog() []types.TimeString {
	return append([]types.TimeString(nil), p.catalog...)
}

func (p *Policy) buildCatalog() []types.TimeString {
	slots := make([]types.TimeString, 0)
	for m := p.openMinutes; m < p.closeMinutes; m += domain.SlotDurationMinutes {
		t, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		if p.IsLunchBlocked(t) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}
