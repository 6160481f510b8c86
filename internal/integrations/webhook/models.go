package webhook

import "time"

// BookingPayload тело запроса к получателю
type BookingPayload struct {
	Event     string    `json:"event"`
	BookingID string    `json:"bookingId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	InviteUID string    `json:"inviteUid,omitempty"`
}
