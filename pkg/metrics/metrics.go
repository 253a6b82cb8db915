package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smc"

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	appointmentRequests *prometheus.CounterVec
	stateTransitions    *prometheus.CounterVec
	slotConflicts       *prometheus.CounterVec
	slotLockContention  prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: labels,
		}, []string{"state"}),

		appointmentRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointment_requests_total",
			Help:        "Appointment creation attempts by result",
			ConstLabels: labels,
		}, []string{"source", "result"}),

		stateTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointment_state_transitions_total",
			Help:        "Appointment state transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),

		slotConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "slot_conflicts_total",
			Help:        "Rejected operations due to slot conflicts",
			ConstLabels: labels,
		}, []string{"policy", "state"}),

		slotLockContention: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "slot_lock_contention_total",
			Help:        "Slot lock acquisitions that found the slot already locked",
			ConstLabels: labels,
		}),
	}
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// IncAppointmentRequest фиксирует попытку создания записи (source: patient/staff)
func (m *Metrics) IncAppointmentRequest(source, result string) {
	if m == nil {
		return
	}
	m.appointmentRequests.WithLabelValues(source, result).Inc()
}

// IncStateTransition фиксирует смену статуса записи
func (m *Metrics) IncStateTransition(from, to string) {
	if m == nil {
		return
	}
	m.stateTransitions.WithLabelValues(from, to).Inc()
}

// IncSlotConflict фиксирует отказ из-за занятого слота
func (m *Metrics) IncSlotConflict(policy, state string) {
	if m == nil {
		return
	}
	m.slotConflicts.WithLabelValues(policy, state).Inc()
}

// IncSlotLockContention фиксирует конкуренцию за блокировку слота
func (m *Metrics) IncSlotLockContention() {
	if m == nil {
		return
	}
	m.slotLockContention.Inc()
}
