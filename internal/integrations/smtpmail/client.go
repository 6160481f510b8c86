package smtpmail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
)

const (
	sinkName       = "email"
	inviteFilename = "invite.ics"
)

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// SSL неявный TLS (порт 465); иначе STARTTLS при поддержке сервером
	SSL           bool
	FromName      string
	Subject       string
	SignOff       string
	TimeZoneLabel string
}

// Sender отправка собранного сообщения
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client канал доставки по email с приглашением во вложении
type Client struct {
	cfg    Config
	sender Sender
	log    Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient создает клиент; без логина и пароля письма не отправляются
func NewClient(cfg Config, log Logger) *Client {
	var sender Sender
	if cfg.Username != "" && cfg.Password != "" {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		d.SSL = cfg.SSL
		sender = d
	}
	return newClient(cfg, sender, log)
}

func newClient(cfg Config, sender Sender, log Logger) *Client {
	if cfg.TimeZoneLabel == "" {
		cfg.TimeZoneLabel = "MST"
	}
	return &Client{cfg: cfg, sender: sender, log: log}
}

// Name имя канала в логах и метриках
func (c *Client) Name() string {
	return sinkName
}

// Deliver отправляет письмо клиенту и внутренним получателям
func (c *Client) Deliver(ctx context.Context, n *notifications.Notification) error {
	if c.sender == nil {
		return fmt.Errorf("%w: email credentials not set", notifications.ErrSkipped)
	}

	m := c.buildMessage(n)

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.sender.DialAndSend(m)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSend, err)
		}
		c.log.Info("SMTP: sent confirmation for booking id=%s to %d recipients", n.Booking.ID, len(n.Emails()))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrSend, ctx.Err())
	}
}

func (c *Client) buildMessage(n *notifications.Notification) *gomail.Message {
	b := n.Booking

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.cfg.Username, c.cfg.FromName)
	m.SetHeader("To", n.Emails()...)
	m.SetHeader("Subject", c.cfg.Subject)
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour call has been scheduled for %s at %s %s.\n\nPlease find the calendar invite attached.\n\nBest,\n%s",
		b.Name, b.Date, b.Time, c.cfg.TimeZoneLabel, c.cfg.SignOff,
	))

	if n.Invite != nil {
		content := n.Invite.ICS
		m.Attach(inviteFilename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {`text/calendar; charset="utf-8"; method=REQUEST`},
			}),
		)
	}

	return m
}
