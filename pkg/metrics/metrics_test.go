package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New("scheduler", prometheus.NewRegistry())

	m.ObserveBooking("success")
	m.ObserveBooking("success")
	m.ObserveBooking("slot_taken")
	m.ObserveMirrorFailure("commit")
	m.ObserveNotification("email", "error")
	m.ObserveNotificationDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("slot_taken")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MirrorFailures.WithLabelValues("commit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationRuns.WithLabelValues("email", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationDrop))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBooking("success")
		m.ObserveBlackoutToggle("ok")
		m.ObserveMirrorFailure("commit")
		m.ObserveStorageFailure("commit")
		m.ObserveNotification("email", "ok")
		m.ObserveNotificationDropped()
	})
}
