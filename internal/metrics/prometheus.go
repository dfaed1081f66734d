package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "placelist"

// PrometheusRecorder exports metrics through a dedicated registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	httpDuration *prometheus.HistogramVec
	rateLimited  *prometheus.CounterVec
	placeCache   *prometheus.CounterVec
	logins       *prometheus.CounterVec
	events       *prometheus.CounterVec
}

// NewPrometheus creates a PrometheusRecorder with Go runtime and process
// collectors registered alongside the application metrics.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()

	p := &PrometheusRecorder{
		registry: reg,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"scope"}),
		placeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "place_cache_requests_total",
			Help:      "Place cache lookups by result.",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Created and updated records by kind.",
		}, []string{"event"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.httpDuration,
		p.rateLimited,
		p.placeCache,
		p.logins,
		p.events,
	)

	return p
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) IncRateLimited(scope string) {
	p.rateLimited.WithLabelValues(scope).Inc()
}

func (p *PrometheusRecorder) IncPlaceCacheHit()  { p.placeCache.WithLabelValues("hit").Inc() }
func (p *PrometheusRecorder) IncPlaceCacheMiss() { p.placeCache.WithLabelValues("miss").Inc() }
func (p *PrometheusRecorder) IncLogin(result string) {
	p.logins.WithLabelValues(result).Inc()
}
func (p *PrometheusRecorder) IncUserRegistered() { p.events.WithLabelValues("user_registered").Inc() }
func (p *PrometheusRecorder) IncPlaceCreated()   { p.events.WithLabelValues("place_created").Inc() }
func (p *PrometheusRecorder) IncPlaceUpdated()   { p.events.WithLabelValues("place_updated").Inc() }
func (p *PrometheusRecorder) IncReviewCreated()  { p.events.WithLabelValues("review_created").Inc() }
func (p *PrometheusRecorder) IncListCreated()    { p.events.WithLabelValues("list_created").Inc() }
