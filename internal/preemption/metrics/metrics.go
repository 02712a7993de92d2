package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricPrefix = "lookout_preempt_"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics counts the preempt requests sent to Armada and the jobs they carried.
type Metrics struct {
	batches      *prometheus.CounterVec
	jobs         *prometheus.CounterVec
	batchLatency *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "batches_total",
			Help: "Number of preempt requests sent to Armada",
		}, []string{"result"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "jobs_total",
			Help: "Number of jobs included in preempt requests",
		}, []string{"result"}),
		batchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricPrefix + "batch_latency_seconds",
			Help:    "Time taken by Armada to answer a preempt request",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"result"}),
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.batches.Describe(ch)
	m.jobs.Describe(ch)
	m.batchLatency.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.batches.Collect(ch)
	m.jobs.Collect(ch)
	m.batchLatency.Collect(ch)
}

func (m *Metrics) RecordBatch(err error, numJobs int, duration time.Duration) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.batches.WithLabelValues(result).Inc()
	m.jobs.WithLabelValues(result).Add(float64(numJobs))
	m.batchLatency.WithLabelValues(result).Observe(duration.Seconds())
}
