// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the Prometheus instrumentation for a Loader. A nil
// *Metrics records nothing.
type Metrics struct {
	samplesRead      prometheus.Counter
	sampleBytesRead  prometheus.Counter
	readErrors       prometheus.Counter
	shardsSubmitted  prometheus.Counter
	prefetchWaits    prometheus.Counter
	prefetchWaitTime prometheus.Histogram
	prefetchCursor   prometheus.Gauge
}

// NewMetrics registers loader metrics with reg. Registering twice with
// the same registry panics, as with any promauto collector.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		samplesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "zcl_loader_samples_read_total",
			Help: "Total number of samples returned by the loader",
		}),
		sampleBytesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "zcl_loader_sample_bytes_read_total",
			Help: "Total bytes of sample data returned by the loader",
		}),
		readErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "zcl_loader_read_errors_total",
			Help: "Total number of failed Sample and Batch calls",
		}),
		shardsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "zcl_loader_prefetch_shards_submitted_total",
			Help: "Total number of shards submitted for prefetch",
		}),
		prefetchWaits: factory.NewCounter(prometheus.CounterOpts{
			Name: "zcl_loader_prefetch_waits_total",
			Help: "Total number of WaitPrefetch calls",
		}),
		prefetchWaitTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "zcl_loader_prefetch_wait_duration_seconds",
			Help: "Time spent blocked in WaitPrefetch",
			Buckets: []float64{
				0.0001, // 100us - already warm
				0.001,  // 1ms
				0.01,   // 10ms
				0.1,    // 100ms
				1,      // 1s - cold shards on slow storage
				10,     // 10s
			},
		}),
		prefetchCursor: factory.NewGauge(prometheus.GaugeOpts{
			Name: "zcl_loader_prefetch_cursor",
			Help: "Position of the next shard to be submitted for prefetch",
		}),
	}
}

func (m *Metrics) recordRead(size int) {
	if m == nil {
		return
	}
	m.samplesRead.Inc()
	m.sampleBytesRead.Add(float64(size))
}

func (m *Metrics) recordReadError() {
	if m == nil {
		return
	}
	m.readErrors.Inc()
}

func (m *Metrics) recordPrefetch(submitted, cursor int) {
	if m == nil {
		return
	}
	m.shardsSubmitted.Add(float64(submitted))
	m.prefetchCursor.Set(float64(cursor))
}

func (m *Metrics) recordWait(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.prefetchWaits.Inc()
	m.prefetchWaitTime.Observe(elapsed.Seconds())
}
