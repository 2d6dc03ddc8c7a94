package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы Record* безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	// Кэш
	CacheRequestsTotal *prometheus.CounterVec

	// Бизнес-метрики календаря
	BookingsCreatedTotal   *prometheus.CounterVec
	BookingsRejectedTotal  *prometheus.CounterVec
	BookingsCancelledTotal *prometheus.CounterVec
	SlotTogglesTotal       *prometheus.CounterVec
	GridRebuildsTotal      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		CacheRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups by result",
		}, []string{"service", "cache", "result"}),

		BookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_bookings_created_total",
			Help: "Total number of committed bookings",
		}, []string{"service", "status"}),

		BookingsRejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_bookings_rejected_total",
			Help: "Total number of rejected booking attempts by reason",
		}, []string{"service", "reason"}),

		BookingsCancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_bookings_cancelled_total",
			Help: "Total number of cancelled bookings by initiator",
		}, []string{"service", "initiator"}),

		SlotTogglesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_slot_toggles_total",
			Help: "Total number of manual slot status changes",
		}, []string{"service", "status"}),

		GridRebuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_grid_rebuilds_total",
			Help: "Total number of calendar grid rebuilds by view mode",
		}, []string{"service", "view"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.CacheRequestsTotal,
		m.BookingsCreatedTotal,
		m.BookingsRejectedTotal,
		m.BookingsCancelledTotal,
		m.SlotTogglesTotal,
		m.GridRebuildsTotal,
	)

	return m
}

// ServiceName имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

func (m *Metrics) RecordBookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(m.serviceName, status).Inc()
}

func (m *Metrics) RecordBookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejectedTotal.WithLabelValues(m.serviceName, reason).Inc()
}

// RecordBookingCancelled initiator: "self" или "admin"
func (m *Metrics) RecordBookingCancelled(initiator string) {
	if m == nil {
		return
	}
	m.BookingsCancelledTotal.WithLabelValues(m.serviceName, initiator).Inc()
}

func (m *Metrics) RecordSlotToggled(status string) {
	if m == nil {
		return
	}
	m.SlotTogglesTotal.WithLabelValues(m.serviceName, status).Inc()
}

func (m *Metrics) RecordGridRebuild(view string) {
	if m == nil {
		return
	}
	m.GridRebuildsTotal.WithLabelValues(m.serviceName, view).Inc()
}

// RecordCacheLookup result: "hit", "miss" или "error"
func (m *Metrics) RecordCacheLookup(cache, result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(m.serviceName, cache, result).Inc()
}
