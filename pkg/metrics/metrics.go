package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
// Все метрики имеют константную метку service
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Бизнес-метрики
	BookingOutcomes  *prometheus.CounterVec
	BlackoutToggles  *prometheus.CounterVec
	MirrorFailures   *prometheus.CounterVec
	StorageFailures  *prometheus.CounterVec
	NotificationRuns *prometheus.CounterVec
	NotificationDrop prometheus.Counter

	// База данных
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBWaitDurationTotal prometheus.Gauge
}

// New регистрирует метрики в reg
// В main передается prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry()
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by outcome code",
		}, []string{"outcome"}),

		BlackoutToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blackout_toggles_total",
			Help: "Admin blackout toggles by result",
		}, []string{"result"}),

		MirrorFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_mirror_failures_total",
			Help: "Failed writes to the secondary availability mirror",
		}, []string{"operation"}),

		StorageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_primary_failures_total",
			Help: "Failed or timed out primary storage operations",
		}, []string{"operation"}),

		NotificationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_deliveries_total",
			Help: "Notification deliveries by sink and result",
		}, []string{"sink", "result"}),

		NotificationDrop: factory.NewCounter(prometheus.CounterOpts{
			Name: "notification_dropped_total",
			Help: "Notifications dropped because the dispatcher queue was full or stopped",
		}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}),
		DBWaitDurationTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds",
			Help: "Total time blocked waiting for a new connection",
		}),
	}
}

// ObserveBooking учитывает исход попытки бронирования
// Безопасен для nil-приемника, чтобы use case работал без метрик
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveBlackoutToggle учитывает результат переключения выходного дня
func (m *Metrics) ObserveBlackoutToggle(result string) {
	if m == nil {
		return
	}
	m.BlackoutToggles.WithLabelValues(result).Inc()
}

// ObserveMirrorFailure учитывает неудачную запись во вторичное хранилище
func (m *Metrics) ObserveMirrorFailure(operation string) {
	if m == nil {
		return
	}
	m.MirrorFailures.WithLabelValues(operation).Inc()
}

// ObserveStorageFailure учитывает сбой основного хранилища
func (m *Metrics) ObserveStorageFailure(operation string) {
	if m == nil {
		return
	}
	m.StorageFailures.WithLabelValues(operation).Inc()
}

// ObserveNotification учитывает результат доставки уведомления
func (m *Metrics) ObserveNotification(sink, result string) {
	if m == nil {
		return
	}
	m.NotificationRuns.WithLabelValues(sink, result).Inc()
}

// ObserveNotificationDropped учитывает отброшенное уведомление
func (m *Metrics) ObserveNotificationDropped() {
	if m == nil {
		return
	}
	m.NotificationDrop.Inc()
}
