// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service and API layers record through.
type Recorder interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordStoreQuery(operation string)
	RecordHTTPStatus(statusCode int)
}

// Collector collects Prometheus metrics for the task service.
type Collector struct {
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	storeQueries *prometheus.CounterVec
	httpStatus   *prometheus.CounterVec
}

// Ensure Collector implements Recorder interface
var _ Recorder = (*Collector)(nil)

// NewCollector creates a new Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_cache_hits_total",
			Help: "Total number of task listing cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_cache_misses_total",
			Help: "Total number of task listing cache misses",
		}),
		storeQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_store_queries_total",
			Help: "Total number of repository operations by kind",
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_http_status_total",
			Help: "Total number of HTTP responses by status code",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.storeQueries,
		c.httpStatus,
	)

	return c
}

// RecordCacheHit records a cache hit on the task listing cache.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

// RecordCacheMiss records a cache miss on the task listing cache.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

// RecordStoreQuery records a repository operation of the given kind.
func (c *Collector) RecordStoreQuery(operation string) {
	c.storeQueries.WithLabelValues(operation).Inc()
}

// RecordHTTPStatus records an HTTP response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns an HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards everything. Used where metrics are not
// wired, e.g. in tests.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) RecordCacheHit()         {}
func (Noop) RecordCacheMiss()        {}
func (Noop) RecordStoreQuery(string) {}
func (Noop) RecordHTTPStatus(int)    {}
