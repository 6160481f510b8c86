package notifications

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Party участник встречи
type Party struct {
	Name  string
	Email string
}

// Recipient внутренний получатель уведомлений
// Optional попадает в приглашение с ролью OPT-PARTICIPANT
type Recipient struct {
	Party
	Optional bool
}

// Invite календарное приглашение на встречу
type Invite struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	ICS     []byte
}

// Notification то, что получает каждый канал доставки
type Notification struct {
	Booking   *domain.Booking
	Invite    *Invite
	Organizer Party
	// Recipients внутренние получатели, без клиента
	Recipients []Recipient
}

// Emails адреса клиента и всех внутренних получателей
func (n *Notification) Emails() []string {
	emails := make([]string, 0, len(n.Recipients)+1)
	emails = append(emails, n.Booking.Email)
	for _, r := range n.Recipients {
		emails = append(emails, r.Email)
	}
	return emails
}
