package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics holds the Prometheus collectors for the HTTP surface and the
// ordering domain.
type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	OrdersCreated prometheus.Counter
	OrderValue    prometheus.Histogram
}

// New registers and returns the server metrics. Must be called once per
// process.
func New() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizzaria",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pizzaria",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "path"})

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pizzaria",
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})

	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pizzaria",
		Name:      "order_value",
		Help:      "Total value of created orders.",
		Buckets:   []float64{20, 50, 100, 150, 250, 500, 1000},
	})

	prometheus.MustRegister(requests, latency, ordersCreated, orderValue)
	return &ServerMetrics{
		Requests:      requests,
		LatencyMS:     latency,
		OrdersCreated: ordersCreated,
		OrderValue:    orderValue,
	}
}

// ObserveOrder records a newly created order and its total value.
func (m *ServerMetrics) ObserveOrder(total float64) {
	m.OrdersCreated.Inc()
	m.OrderValue.Observe(total)
}

// HTTPMiddleware counts requests and observes latency per route.
func (m *ServerMetrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.Requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(r.Method, r.URL.Path).Observe(float64(time.Since(start).Milliseconds()))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Handler exposes collected metrics in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
