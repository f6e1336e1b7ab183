package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// БД
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTransactionsTotal *prometheus.CounterVec

	// Бизнес-метрики
	CheckoutsTotal         *prometheus.CounterVec
	ValidationRejections   *prometheus.CounterVec
	PriceGuardRejections   *prometheus.CounterVec
	PaymentsVerified       *prometheus.CounterVec
	PendingBookingsExpired prometheus.Counter
}

// New регистрирует метрики в глобальном реестре prometheus
func New(service string) *Metrics {
	return NewWithRegisterer(service, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (удобно для тестов)
func NewWithRegisterer(service string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBTransactionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Total number of database transactions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		CheckoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_checkouts_total",
			Help:        "Checkout attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		ValidationRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_validation_rejections_total",
			Help:        "Booking validation rejections by reason code",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		PriceGuardRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_price_guard_rejections_total",
			Help:        "Price integrity rejections by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		PaymentsVerified: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_payments_verified_total",
			Help:        "Payment verifications by resulting status",
			ConstLabels: constLabels,
		}, []string{"status"}),

		PendingBookingsExpired: f.NewCounter(prometheus.CounterOpts{
			Name:        "booking_pending_expired_total",
			Help:        "Pending bookings marked expired by the reaper",
			ConstLabels: constLabels,
		}),
	}
}

// IncCheckout безопасен для nil receiver (метрики выключены)
func (m *Metrics) IncCheckout(result string) {
	if m == nil {
		return
	}
	m.CheckoutsTotal.WithLabelValues(result).Inc()
}

// IncValidationRejection безопасен для nil receiver
func (m *Metrics) IncValidationRejection(reason string) {
	if m == nil {
		return
	}
	m.ValidationRejections.WithLabelValues(reason).Inc()
}

// IncPriceGuardRejection безопасен для nil receiver
func (m *Metrics) IncPriceGuardRejection(reason string) {
	if m == nil {
		return
	}
	m.PriceGuardRejections.WithLabelValues(reason).Inc()
}

// IncPaymentVerified безопасен для nil receiver
func (m *Metrics) IncPaymentVerified(status string) {
	if m == nil {
		return
	}
	m.PaymentsVerified.WithLabelValues(status).Inc()
}

// AddPendingExpired безопасен для nil receiver
func (m *Metrics) AddPendingExpired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.PendingBookingsExpired.Add(float64(n))
}
