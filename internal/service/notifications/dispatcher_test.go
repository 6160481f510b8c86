package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

type recordingSink struct {
	name string
	err  error

	mu       sync.Mutex
	received []*Notification
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, n)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

// blockingSink ждет release или отмены контекста
type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Name() string { return "blocking" }

func (s *blockingSink) Deliver(ctx context.Context, _ *Notification) error {
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type panicSink struct{}

func (panicSink) Name() string { return "panic" }

func (panicSink) Deliver(context.Context, *Notification) error { panic("boom") }

type countingMetrics struct {
	mu      sync.Mutex
	results map[string]int
	dropped int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{results: map[string]int{}}
}

func (m *countingMetrics) ObserveNotification(sink, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[sink+":"+result]++
}

func (m *countingMetrics) ObserveNotificationDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped++
}

func bookingN(id string) *domain.Booking {
	b := testBooking()
	b.ID = id
	return b
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	ok := &recordingSink{name: "ok"}
	failing := &recordingSink{name: "failing", err: errors.New("smtp down")}
	skipped := &recordingSink{name: "skipped", err: ErrSkipped}
	metrics := newCountingMetrics()

	d := NewDispatcher(NewInviteBuilder(testInviteConfig()), []Sink{failing, panicSink{}, skipped, ok}, metrics, logger.NewNop(), Options{})
	d.Start()

	for _, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, d.Enqueue(bookingN(id)))
	}
	require.NoError(t, d.Stop(context.Background()))

	assert.Equal(t, 3, ok.count())
	assert.Equal(t, 3, failing.count())
	assert.Equal(t, 3, metrics.results["ok:success"])
	assert.Equal(t, 3, metrics.results["failing:failure"])
	assert.Equal(t, 3, metrics.results["panic:failure"])
	assert.Equal(t, 3, metrics.results["skipped:skipped"])

	n := ok.received[0]
	require.NotNil(t, n.Invite)
	assert.Equal(t, []string{"ann@x.com", "info@flated.com", "joe@flated.com"}, n.Emails())
}

func TestDispatcher_QueueFullDrops(t *testing.T) {
	metrics := newCountingMetrics()
	d := NewDispatcher(NewInviteBuilder(testInviteConfig()), nil, metrics, logger.NewNop(), Options{QueueSize: 1})

	require.NoError(t, d.Enqueue(bookingN("b1")))
	assert.ErrorIs(t, d.Enqueue(bookingN("b2")), ErrQueueFull)
	assert.Equal(t, 1, metrics.dropped)

	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	d := NewDispatcher(NewInviteBuilder(testInviteConfig()), nil, nil, logger.NewNop(), Options{})
	d.Start()
	require.NoError(t, d.Stop(context.Background()))

	assert.ErrorIs(t, d.Enqueue(bookingN("b1")), ErrStopped)
	assert.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_StopDeadlineCancelsDeliveries(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(NewInviteBuilder(testInviteConfig()), []Sink{sink}, nil, logger.NewNop(), Options{Workers: 1, DeliveryTimeout: time.Minute})
	d.Start()

	require.NoError(t, d.Enqueue(bookingN("b1")))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := d.Stop(ctx)
	assert.ErrorIs(t, err, ErrStopped)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDispatcher_EnqueueDoesNotBlock(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(NewInviteBuilder(testInviteConfig()), []Sink{sink}, nil, logger.NewNop(), Options{Workers: 1, QueueSize: 2})
	d.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			_ = d.Enqueue(bookingN("b"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked")
	}

	close(sink.release)
	require.NoError(t, d.Stop(context.Background()))
}
