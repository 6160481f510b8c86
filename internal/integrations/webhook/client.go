package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
)

const (
	sinkName     = "webhook"
	eventName    = "booking.confirmed"
	secretHeader = "X-Webhook-Secret"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправляет подтвержденные бронирования POST-запросом на внешний URL
type Client struct {
	url        string
	secret     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(url, secret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:    url,
		secret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Name имя канала в логах и метриках
func (c *Client) Name() string {
	return sinkName
}

// Deliver отправляет бронирование получателю
func (c *Client) Deliver(ctx context.Context, n *notifications.Notification) error {
	b := n.Booking
	payload := BookingPayload{
		Event:     eventName,
		BookingID: b.ID,
		Date:      b.Date.String(),
		Time:      b.Time.String(),
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt.UTC(),
	}
	if n.Invite != nil {
		payload.InviteUID = n.Invite.UID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set(secretHeader, c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Любой 2xx считается успешной доставкой
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("Webhook: delivered booking id=%s, status=%d", b.ID, resp.StatusCode)
	return nil
}
