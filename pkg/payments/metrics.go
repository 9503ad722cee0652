package payments

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsStartKey = "metrics_start_time"

// PrometheusMetrics records request counts and latency per endpoint.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the client metrics with reg. A nil reg
// uses prometheus.DefaultRegisterer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &PrometheusMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_client_requests_total",
			Help: "Total API requests by method, endpoint and status",
		}, []string{"method", "endpoint", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payments_client_request_duration_seconds",
			Help:    "API request latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "endpoint"}),
	}
}

// Register adds the metrics interceptors to chain.
func (m *PrometheusMetrics) Register(chain *InterceptorChain) {
	chain.AddRequestInterceptor(m.RequestInterceptor())
	chain.AddResponseInterceptor(m.ResponseInterceptor())
}

// RequestInterceptor stamps the start time on the request.
func (m *PrometheusMetrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// ResponseInterceptor counts the response and observes its latency.
// Transport failures are counted with status "error".
func (m *PrometheusMetrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		endpoint := EndpointLabel(req.Path)

		status := "error"
		if resp.Error == nil {
			status = strconv.Itoa(resp.StatusCode)
		}

		m.requests.WithLabelValues(req.Method, endpoint, status).Inc()

		if start, ok := req.Metadata[metricsStartKey].(time.Time); ok {
			m.latency.WithLabelValues(req.Method, endpoint).Observe(time.Since(start).Seconds())
		}

		return nil
	}
}

// EndpointLabel replaces the resource ID in path with "{id}" so that label
// cardinality stays bounded, e.g. /v1/payment_intents/pi_1/capture becomes
// /v1/payment_intents/{id}/capture.
func EndpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")

	const idSegment = 3
	if len(segments) > idSegment && segments[idSegment] != "" {
		segments[idSegment] = "{id}"
	}

	return strings.Join(segments, "/")
}
