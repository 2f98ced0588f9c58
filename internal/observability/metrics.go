package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	exchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riak",
			Subsystem: "client",
			Name:      "exchanges_total",
			Help:      "Total request/response exchanges.",
		},
		[]string{"op", "outcome"},
	)
	exchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "riak",
			Subsystem: "client",
			Name:      "exchange_duration_seconds",
			Help:      "Request/response exchange duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)
	bytesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riak",
			Subsystem: "client",
			Name:      "request_bytes_total",
			Help:      "Framed request bytes written, header included.",
		},
		[]string{"op"},
	)
	bytesRead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riak",
			Subsystem: "client",
			Name:      "response_bytes_total",
			Help:      "Framed response bytes read, header included.",
		},
		[]string{"op"},
	)
	streamPages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riak",
			Subsystem: "client",
			Name:      "stream_pages_total",
			Help:      "Pages consumed from streaming listings.",
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(exchanges, exchangeDuration, bytesWritten, bytesRead, streamPages)
	})
}

// Outcome labels for RecordExchange.
const (
	OutcomeOK         = "ok"
	OutcomeServerErr  = "server_error"
	OutcomeSchemaErr  = "schema_error"
	OutcomeFramingErr = "framing_error"
	OutcomeConnErr    = "connection_error"
)

func RecordExchange(op, outcome string, duration time.Duration) {
	RegisterMetrics()
	exchanges.WithLabelValues(op, outcome).Inc()
	exchangeDuration.WithLabelValues(op, outcome).Observe(duration.Seconds())
}

func RecordBytes(op string, written, read int) {
	RegisterMetrics()
	if written > 0 {
		bytesWritten.WithLabelValues(op).Add(float64(written))
	}
	if read > 0 {
		bytesRead.WithLabelValues(op).Add(float64(read))
	}
}

func RecordStreamPage(op string) {
	RegisterMetrics()
	streamPages.WithLabelValues(op).Inc()
}

// FormatCode renders a message code for log fields.
func FormatCode(code byte) string {
	return strconv.Itoa(int(code))
}
