package notifications

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

const productID = "-//SMC//Scheduler Service//EN"

// InviteConfig параметры календарного приглашения
type InviteConfig struct {
	Summary    string
	Location   string
	Organizer  Party
	Recipients []Recipient
	TimeZone   *time.Location
}

// InviteBuilder формирует ICS-приглашение для подтвержденного бронирования
type InviteBuilder struct {
	cfg InviteConfig
	now func() time.Time
}

// NewInviteBuilder создает построитель приглашений
func NewInviteBuilder(cfg InviteConfig) *InviteBuilder {
	if cfg.TimeZone == nil {
		cfg.TimeZone = time.UTC
	}
	return &InviteBuilder{cfg: cfg, now: time.Now}
}

// Recipients внутренние получатели из конфигурации
func (b *InviteBuilder) Recipients() []Recipient {
	return append([]Recipient(nil), b.cfg.Recipients...)
}

// Organizer организатор встречи
func (b *InviteBuilder) Organizer() Party {
	return b.cfg.Organizer
}

// Build создает событие на 30 минут с организатором и участниками
// Клиент и обязательные внутренние получатели идут с ролью REQ-PARTICIPANT, остальные OPT-PARTICIPANT
func (b *InviteBuilder) Build(booking *domain.Booking) (*Invite, error) {
	if booking == nil {
		return nil, fmt.Errorf("%w: nil booking", ErrInvite)
	}

	start := booking.Start(b.cfg.TimeZone)
	end := booking.End(b.cfg.TimeZone)
	uid := booking.ID + "@scheduler"

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(productID)

	event := cal.AddEvent(uid)
	event.SetDtStampTime(b.now())
	event.SetCreatedTime(booking.CreatedAt)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(b.cfg.Summary)
	event.SetDescription(fmt.Sprintf("Scheduled call with %s.\nPhone: %s\nEmail: %s", booking.Name, booking.Phone, booking.Email))
	event.SetLocation(b.cfg.Location)
	event.SetProperty(ics.ComponentPropertyStatus, "CONFIRMED")
	event.SetProperty(ics.ComponentPropertyTransp, "OPAQUE")

	if b.cfg.Organizer.Email != "" {
		event.SetOrganizer("mailto:"+b.cfg.Organizer.Email, ics.WithCN(b.cfg.Organizer.Name))
	}

	addAttendee(event, Party{Name: booking.Name, Email: booking.Email}, ics.ParticipationRoleReqParticipant)
	for _, r := range b.cfg.Recipients {
		role := ics.ParticipationRoleReqParticipant
		if r.Optional {
			role = ics.ParticipationRoleOptParticipant
		}
		addAttendee(event, r.Party, role)
	}

	return &Invite{
		UID:     uid,
		Summary: b.cfg.Summary,
		Start:   start,
		End:     end,
		ICS:     []byte(cal.Serialize()),
	}, nil
}

func addAttendee(event *ics.VEvent, p Party, role ics.ParticipationRole) {
	event.AddAttendee("mailto:"+p.Email,
		ics.WithCN(p.Name),
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusAccepted,
		role,
		ics.WithRSVP(true),
	)
}
