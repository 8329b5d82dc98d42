package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled, by method, route and status.",
	}, []string{"service", "method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "method", "route"})

	downstreamFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "peers",
		Name:      "downstream_failures_total",
		Help:      "Failed calls to peer services, by peer and failure kind.",
	}, []string{"peer", "kind"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, downstreamFailures)
}

// Middleware records request counts and latencies for every route
func Middleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requestsTotal.WithLabelValues(service, c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(service, c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordDownstreamFailure counts a failed peer call. kind is "transport" or
// "application".
func RecordDownstreamFailure(peer, kind string) {
	downstreamFailures.WithLabelValues(peer, kind).Inc()
}
