package domain

import "time"

// Slot configuration
const (
	SlotDurationMinutes = 30
	SlotDuration        = SlotDurationMinutes * time.Minute
)

// Default business calendar
const (
	DefaultOpenHour   = 9
	DefaultCloseHour  = 17
	DefaultLunchStart = "12:00"
	DefaultLunchEnd   = "13:00"
	DefaultTimezone   = "America/Denver"
)

// Field limits
const (
	MaxNameLength  = 200
	MaxEmailLength = 254
	MaxPhoneLength = 40
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
