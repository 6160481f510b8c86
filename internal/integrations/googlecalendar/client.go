package googlecalendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
)

const (
	sinkName          = "google_calendar"
	localDateTime     = "2006-01-02T15:04:05"
	defaultCalendarID = "primary"
)

// Config учетные данные сервисного аккаунта
type Config struct {
	ServiceAccountEmail string
	// PrivateKey PEM; экранированные \n заменяются на переводы строк
	PrivateKey string
	CalendarID string
	// TimeZone IANA-зона, в которой создается событие
	TimeZone string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client канал доставки в Google Calendar
type Client struct {
	svc        *calendar.Service
	calendarID string
	location   *time.Location
	log        Logger
}

// Enabled true, если заданы учетные данные сервисного аккаунта
func (c Config) Enabled() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKey != ""
}

// NewClient создает клиент с авторизацией через JWT сервисного аккаунта
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{calendar.CalendarScope},
		TokenURL:   google.JWTTokenURL,
	}

	return newClient(ctx, cfg, log, option.WithHTTPClient(conf.Client(ctx)))
}

func newClient(ctx context.Context, cfg Config, log Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time zone %q: %v", ErrInit, cfg.TimeZone, err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = defaultCalendarID
	}

	return &Client{svc: svc, calendarID: calendarID, location: loc, log: log}, nil
}

// Name имя канала в логах и метриках
func (c *Client) Name() string {
	return sinkName
}

// Deliver создает событие на время бронирования
func (c *Client) Deliver(ctx context.Context, n *notifications.Notification) error {
	b := n.Booking

	event := &calendar.Event{
		Summary:     "Call with " + b.Name,
		Description: fmt.Sprintf("Phone: %s\nEmail: %s", b.Phone, b.Email),
		Start: &calendar.EventDateTime{
			DateTime: b.Start(c.location).Format(localDateTime),
			TimeZone: c.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: b.End(c.location).Format(localDateTime),
			TimeZone: c.location.String(),
		},
	}
	if n.Invite != nil {
		event.ICalUID = n.Invite.UID
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: booking id=%s: %v", ErrInsert, b.ID, err)
	}

	c.log.Info("GoogleCalendar: created event id=%s for booking id=%s", created.Id, b.ID)
	return nil
}
