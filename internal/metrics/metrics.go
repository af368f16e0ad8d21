// Package metrics records request and store-operation metrics.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder observes the outcome of a named store operation, e.g. "orders.list_by_status".
type Recorder interface {
	ObserveOperation(ctx context.Context, operation string, success bool, took time.Duration)
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveOperation(context.Context, string, bool, time.Duration) {}

// Multi fans an observation out to several recorders.
type Multi []Recorder

func (m Multi) ObserveOperation(ctx context.Context, operation string, success bool, took time.Duration) {
	for _, r := range m {
		r.ObserveOperation(ctx, operation, success, took)
	}
}

// Observe times fn and reports it to r under operation.
func Observe(ctx context.Context, r Recorder, operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.ObserveOperation(ctx, operation, err == nil, time.Since(start))
	return err
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// Prometheus holds the service's collectors.
type Prometheus struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	operations     *prometheus.CounterVec
	operationTimes *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "records_api_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "records_api_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "records_api_store_operations_total",
				Help: "Total number of store operations",
			},
			[]string{"operation", "status"},
		),
		operationTimes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "records_api_store_operation_duration_seconds",
				Help:    "Duration of store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (p *Prometheus) ObserveOperation(_ context.Context, operation string, success bool, took time.Duration) {
	p.operations.WithLabelValues(operation, outcome(success)).Inc()
	p.operationTimes.WithLabelValues(operation).Observe(took.Seconds())
}

// Middleware counts and times every request. Unmatched routes share one path label
// so arbitrary URLs cannot grow the label set.
func (p *Prometheus) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}
		status := strconv.Itoa(c.Writer.Status())
		p.httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		p.httpDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
