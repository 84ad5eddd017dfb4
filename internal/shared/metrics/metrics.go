// Package metrics provides Prometheus instrumentation for the BFF.
//
// Exposed series:
//
//	tvguide_http_requests_total            counter: inbound requests by method/route/status
//	tvguide_http_request_duration_seconds  histogram: inbound latency by method/route
//	tvguide_upstream_requests_total        counter: data service calls by operation/outcome
//	tvguide_upstream_duration_seconds      histogram: data service latency by operation
//	tvguide_parser_skipped_items_total     counter: upstream records dropped by a parser
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeStatus  = "status"
)

type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	skippedItems     *prometheus.CounterVec
	gatherer         prometheus.Gatherer
}

// New registers the BFF metrics with reg. Tests pass prometheus.NewRegistry() to stay isolated;
// production passes prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tvguide_http_requests_total",
			Help: "Total HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tvguide_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tvguide_upstream_requests_total",
			Help: "Calls to the data service by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tvguide_upstream_duration_seconds",
			Help:    "Data service call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		skippedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tvguide_parser_skipped_items_total",
			Help: "Upstream records dropped because they could not be normalized.",
		}, []string{"parser"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.upstreamRequests, m.upstreamDuration, m.skippedItems)
	if gatherer, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = gatherer
	}
	return m
}

// ObserveUpstream records one data service call. Safe on a nil receiver.
func (m *Metrics) ObserveUpstream(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SkippedItem counts one dropped record for parser. Safe on a nil receiver.
func (m *Metrics) SkippedItem(parser string) {
	if m == nil {
		return
	}
	m.skippedItems.WithLabelValues(parser).Inc()
}

// Handler returns the scrape endpoint for the registry the metrics were registered with.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency using the echo route template as label,
// which keeps path parameters such as channel ids out of the label set.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			var httpErr *echo.HTTPError
			if err != nil && !c.Response().Committed {
				status = http.StatusInternalServerError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}
			m.httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
