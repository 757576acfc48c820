// Package metrics exposes Prometheus instrumentation for kernel operations
// and runtime memory readings.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation outcome labels.
const (
	StatusSuccess     = "success"
	StatusInterrupted = "interrupted"
	StatusError       = "error"
)

// Recorder collects operation metrics in its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	operations    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	interrupts    *prometheus.CounterVec
	polls         *prometheus.HistogramVec
	operandDigits *prometheus.HistogramVec
	heapAlloc     prometheus.Gauge
}

// NewRecorder creates a Recorder whose registry also carries the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "The total number of big-integer operations processed",
		}, []string{"op", "strategy", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_operation_duration_seconds",
			Help:    "The duration of big-integer operations in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"op", "strategy"}),
		interrupts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_interrupts_total",
			Help: "Operations stopped because their platform requested an interrupt",
		}, []string{"op"}),
		polls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_interrupt_polls",
			Help:    "Number of interrupt polls per operation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"op"}),
		operandDigits: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_operand_digits",
			Help:    "Length of the operands in digits",
			Buckets: prometheus.ExponentialBuckets(1, 8, 10),
		}, []string{"op"}),
		heapAlloc: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_heap_alloc_bytes",
			Help: "Heap bytes in use after the last operation",
		}),
	}
}

// ObserveOperation records one finished operation.
func (r *Recorder) ObserveOperation(op, strategy, status string, d time.Duration, polls uint64) {
	r.operations.WithLabelValues(op, strategy, status).Inc()
	r.duration.WithLabelValues(op, strategy).Observe(d.Seconds())
	r.polls.WithLabelValues(op).Observe(float64(polls))
	if status == StatusInterrupted {
		r.interrupts.WithLabelValues(op).Inc()
	}
}

// ObserveOperands records the length of each operand of op.
func (r *Recorder) ObserveOperands(op string, digits ...int) {
	for _, d := range digits {
		r.operandDigits.WithLabelValues(op).Observe(float64(d))
	}
}

// ObserveMemory records a memory snapshot.
func (r *Recorder) ObserveMemory(s MemorySnapshot) {
	r.heapAlloc.Set(float64(s.HeapAlloc))
}

// Registry returns the registry holding the metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler returns the HTTP handler serving the metrics in Prometheus format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
