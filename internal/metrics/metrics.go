// Package metrics exposes Prometheus collectors for the viewer service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by route and status code.
	RequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataview",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, by route and status.",
	}, []string{"route", "status"})

	// RequestDuration observes HTTP request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dataview",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// QueryTotal counts dataset queries by outcome.
	QueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataview",
		Subsystem: "query",
		Name:      "total",
		Help:      "Dataset queries executed, by outcome.",
	}, []string{"outcome"})

	// CacheHits counts result cache hits and misses.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataview",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Result cache lookups, by outcome.",
	}, []string{"outcome"})
)

// Middleware records request counts and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
