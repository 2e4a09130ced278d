package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mindd/internal/models"
	"mindd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncLogins()
	IncPlansCreated(level string)
	IncPlansReaped()
	IncNotifications(kind string, success bool)
	IncJobRuns(job string, success bool)
	ObserveJobDuration(job string, duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	loginsTotal         prometheus.Counter
	plansCreated        *prometheus.CounterVec
	plansReaped         prometheus.Counter
	notificationsTotal  *prometheus.CounterVec
	jobRunsTotal        *prometheus.CounterVec
	jobDuration         *prometheus.HistogramVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncLogins() {
	m.loginsTotal.Inc()
}

func (m *MetricsProvider) IncPlansCreated(level string) {
	m.plansCreated.WithLabelValues(level).Inc()
}

func (m *MetricsProvider) IncPlansReaped() {
	m.plansReaped.Inc()
}

func (m *MetricsProvider) IncNotifications(kind string, success bool) {
	m.notificationsTotal.WithLabelValues(kind, outcome(success)).Inc()
}

func (m *MetricsProvider) IncJobRuns(job string, success bool) {
	m.jobRunsTotal.WithLabelValues(job, outcome(success)).Inc()
}

func (m *MetricsProvider) ObserveJobDuration(job string, duration time.Duration) {
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func outcome(success bool) string {
	if success {
		return "ok"
	}
	return "error"
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, stores *models.Stores) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		loginsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindd_logins_total",
			Help: "Total number of applied logins",
		}),

		plansCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindd_plans_created_total",
			Help: "Total number of learning plans created",
		}, []string{"level"}),

		plansReaped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindd_plans_reaped_total",
			Help: "Total number of fully-notified plans deleted",
		}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindd_notifications_total",
			Help: "Notification dispatch attempts by template kind and outcome",
		}, []string{"kind", "outcome"}),

		jobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindd_job_runs_total",
			Help: "Scheduled job executions by job name and outcome",
		}, []string{"job", "outcome"}),

		jobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindd_job_duration_seconds",
			Help:    "Scheduled job duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindd_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mindd_user_stats_total",
		Help: "Current number of user stat records",
	}, func() float64 {
		return float64(stores.Stats.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mindd_plans_total",
		Help: "Current number of live plans",
	}, func() float64 {
		return float64(stores.Plans.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mindd_content_items_total",
		Help: "Current number of content items",
	}, func() float64 {
		return float64(stores.Content.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncLogins()                                       {}
func (n *noopMetrics) IncPlansCreated(_ string)                         {}
func (n *noopMetrics) IncPlansReaped()                                  {}
func (n *noopMetrics) IncNotifications(_ string, _ bool)                {}
func (n *noopMetrics) IncJobRuns(_ string, _ bool)                      {}
func (n *noopMetrics) ObserveJobDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
