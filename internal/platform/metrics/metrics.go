package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RidersCreated       prometheus.Counter
	RiderFailures       *prometheus.CounterVec
	OrphanedAccounts    prometheus.Counter
	CreateRiderDuration prometheus.Histogram
	EndpointLatency     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers metrics on reg; tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RidersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "pharmafinder_riders_created_total",
			Help: "Total number of rider accounts provisioned",
		}),
		RiderFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pharmafinder_rider_create_failures_total",
			Help: "Rider provisioning failures by error code",
		}, []string{"code"}),
		OrphanedAccounts: f.NewCounter(prometheus.CounterOpts{
			Name: "pharmafinder_rider_orphaned_accounts_total",
			Help: "Identity accounts created whose rider profile write failed",
		}),
		CreateRiderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pharmafinder_create_rider_duration_seconds",
			Help:    "Duration of CreateRider operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		EndpointLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pharmafinder_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncrementRidersCreated increments the riders created counter by 1
func (m *Metrics) IncrementRidersCreated() {
	m.RidersCreated.Inc()
}

func (m *Metrics) IncrementRiderFailure(code string) {
	m.RiderFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) IncrementOrphanedAccounts() {
	m.OrphanedAccounts.Inc()
}

// ObserveCreateRider records the duration of a CreateRider call.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveCreateRider(start time.Time) {
	m.CreateRiderDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveEndpoint(method, route, status string, d time.Duration) {
	m.EndpointLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
}
