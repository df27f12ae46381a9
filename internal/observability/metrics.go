package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics registry and the client's meters.
type Metrics struct {
	Registry          *prometheus.Registry
	RequestDuration   *prometheus.HistogramVec
	RequestsTotal     *prometheus.CounterVec
	BytesTransferred  *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationTotal    *prometheus.CounterVec
}

// NewMetrics creates a custom Prometheus registry with the geoclient metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	reqDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geoclient_http_request_duration_seconds",
		Help:    "Duration of API requests in seconds, including reading the body.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "code"})

	reqTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoclient_http_requests_total",
		Help: "Total number of API requests by method and status code.",
	}, []string{"method", "code"})

	bytesTransferred := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoclient_bytes_transferred_total",
		Help: "Total request and response body bytes.",
	}, []string{"direction"})

	opDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geoclient_operation_duration_seconds",
		Help:    "Duration of client commands in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	opTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoclient_operation_total",
		Help: "Total number of client commands.",
	}, []string{"operation", "status"})

	reg.MustRegister(reqDuration, reqTotal, bytesTransferred, opDuration, opTotal)

	return &Metrics{
		Registry:          reg,
		RequestDuration:   reqDuration,
		RequestsTotal:     reqTotal,
		BytesTransferred:  bytesTransferred,
		OperationDuration: opDuration,
		OperationTotal:    opTotal,
	}
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
