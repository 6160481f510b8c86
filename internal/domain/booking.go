package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// ErrSlotOccupied is returned by availability stores when (date, time) already holds a booking
var ErrSlotOccupied = errors.New("domain: slot already occupied")

// Booking is a committed reservation of one slot. Immutable once created.
type Booking struct {
	ID        string
	Date      types.DateString
	Time      types.TimeString
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Start returns the booking start in loc
func (b *Booking) Start(loc *time.Location) time.Time {
	return b.Date.At(b.Time, loc)
}

// End returns the booking end in loc
func (b *Booking) End(loc *time.Location) time.Time {
	return b.Start(loc).Add(SlotDuration)
}

// SlotKey identifies the slot occupied by the booking
func (b *Booking) SlotKey() string {
	return SlotKey(b.Date, b.Time)
}

// SlotKey builds the uniqueness key for a (date, time) pair
func SlotKey(date types.DateString, t types.TimeString) string {
	return date.String() + " " + t.String()
}

// BookingsRange фильтр выгрузки бронирований за период (включительно)
type BookingsRange struct {
	From types.DateString
	To   types.DateString
}

// Contains returns true if date is within the range
func (r BookingsRange) Contains(date types.DateString) bool {
	return !date.IsBefore(r.From) && !r.To.IsBefore(date)
}
