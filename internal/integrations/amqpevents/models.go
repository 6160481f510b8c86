package amqpevents

import "time"

// EventBookingConfirmed ключ маршрутизации события о подтвержденном бронировании
const EventBookingConfirmed = "booking.confirmed"

// BookingConfirmed тело события
type BookingConfirmed struct {
	Event     string    `json:"event"`
	BookingID string    `json:"bookingId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}
