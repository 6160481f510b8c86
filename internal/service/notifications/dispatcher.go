package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

const (
	DefaultQueueSize       = 100
	DefaultWorkers         = 2
	DefaultDeliveryTimeout = 10 * time.Second
)

// Options параметры диспетчера
type Options struct {
	QueueSize       int
	Workers         int
	DeliveryTimeout time.Duration
	// Rate ограничение на число обрабатываемых бронирований в секунду; 0 - без ограничения
	Rate  float64
	Burst int
}

// Dispatcher фоновая отправка уведомлений о подтвержденных бронированиях
// Enqueue никогда не блокирует; ошибки доставки только логируются
type Dispatcher struct {
	sinks   []Sink
	invites *InviteBuilder
	metrics Metrics
	logger  Logger
	limiter *rate.Limiter
	timeout time.Duration
	workers int

	queue chan *domain.Booking

	mu      sync.RWMutex
	started bool
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер; metrics может быть nil
func NewDispatcher(invites *InviteBuilder, sinks []Sink, metrics Metrics, logger Logger, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = DefaultDeliveryTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		sinks:   sinks,
		invites: invites,
		metrics: metrics,
		logger:  logger,
		limiter: limiter,
		timeout: opts.DeliveryTimeout,
		workers: opts.Workers,
		queue:   make(chan *domain.Booking, opts.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start запускает воркеры; повторный вызов ничего не делает
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	d.logger.Info("Notifications: started %d workers, %d sinks", d.workers, len(d.sinks))
}

// Enqueue ставит бронирование в очередь без ожидания
func (d *Dispatcher) Enqueue(booking *domain.Booking) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	b := *booking
	select {
	case d.queue <- &b:
		return nil
	default:
		if d.metrics != nil {
			d.metrics.ObserveNotificationDropped()
		}
		d.logger.Warn("Notifications: queue full, dropped booking id=%s", booking.ID)
		return ErrQueueFull
	}
}

// Stop перестает принимать задачи и дожидается обработки очереди
// Если ctx истекает раньше, текущие доставки отменяются
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Notifications: queue drained")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return fmt.Errorf("%w: drain interrupted: %v", ErrStopped, ctx.Err())
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for booking := range d.queue {
		if err := d.limiter.Wait(d.ctx); err != nil {
			d.logger.Warn("Notifications: worker %d skipped booking id=%s: %v", id, booking.ID, err)
			continue
		}
		d.process(booking)
	}
}

// process отправляет уведомление во все каналы независимо друг от друга
func (d *Dispatcher) process(booking *domain.Booking) {
	invite, err := d.invites.Build(booking)
	if err != nil {
		d.logger.Error("Notifications: invite for booking id=%s: %v", booking.ID, err)
	}

	n := &Notification{
		Booking:    booking,
		Invite:     invite,
		Organizer:  d.invites.Organizer(),
		Recipients: d.invites.Recipients(),
	}

	for _, sink := range d.sinks {
		err := d.deliver(sink, n)
		result := "success"
		switch {
		case err == nil:
			d.logger.Info("Notifications: %s delivered for booking id=%s", sink.Name(), booking.ID)
		case errors.Is(err, ErrSkipped):
			result = "skipped"
			d.logger.Info("Notifications: %s skipped for booking id=%s: %v", sink.Name(), booking.ID, err)
		default:
			result = "failure"
			d.logger.Error("Notifications: %s failed for booking id=%s: %v", sink.Name(), booking.ID, err)
		}
		if d.metrics != nil {
			d.metrics.ObserveNotification(sink.Name(), result)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, n *Notification) (err error) {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrDeliveryFailed, r)
		}
	}()

	if err := sink.Deliver(ctx, n); err != nil {
		if errors.Is(err, ErrSkipped) || errors.Is(err, ErrDeliveryFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}
