package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик Prometheus сервиса бронирования
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbConnectionsOpen prometheus.Gauge
	dbConnectionsIdle prometheus.Gauge
	dbConnectionsUsed prometheus.Gauge

	appointmentsCreatedTotal *prometheus.CounterVec
	slotConflictsTotal       prometheus.Counter
	frequencyRejectsTotal    prometheus.Counter
	statusTransitionsTotal   *prometheus.CounterVec
	notifyFailuresTotal      prometheus.Counter
}

// New создает и регистрирует метрики в глобальном регистре
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		service: service,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}),

		dbConnectionsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		dbConnectionsUsed: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}),

		appointmentsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Total number of created appointments",
			ConstLabels: constLabels,
		}, []string{"service_category"}),

		slotConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_conflicts_total",
			Help:        "Total number of rejected bookings due to slot conflicts",
			ConstLabels: constLabels,
		}),

		frequencyRejectsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "frequency_limit_rejects_total",
			Help:        "Total number of rejected bookings due to the repeat-booking policy",
			ConstLabels: constLabels,
		}),

		statusTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_status_transitions_total",
			Help:        "Total number of appointment status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		notifyFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Total number of failed notification sends",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbConnectionsOpen.Set(float64(open))
	m.dbConnectionsUsed.Set(float64(inUse))
	m.dbConnectionsIdle.Set(float64(idle))
}

// IncAppointmentCreated фиксирует успешное создание записи
func (m *Metrics) IncAppointmentCreated(serviceCategory string) {
	m.appointmentsCreatedTotal.WithLabelValues(serviceCategory).Inc()
}

// IncSlotConflict фиксирует отказ из-за занятого слота
func (m *Metrics) IncSlotConflict() {
	m.slotConflictsTotal.Inc()
}

// IncFrequencyReject фиксирует отказ из-за лимита повторных записей
func (m *Metrics) IncFrequencyReject() {
	m.frequencyRejectsTotal.Inc()
}

// IncStatusTransition фиксирует переход статуса записи
func (m *Metrics) IncStatusTransition(from, to string) {
	m.statusTransitionsTotal.WithLabelValues(from, to).Inc()
}

// IncNotifyFailure фиксирует неудачную отправку уведомления
func (m *Metrics) IncNotifyFailure() {
	m.notifyFailuresTotal.Inc()
}
