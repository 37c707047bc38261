// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus collectors shared by tone sources and
// buffer pools.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "audtone"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing,
// so library callers that do not care about metrics pay no cost.
type Metrics struct {
	SourcesStarted     prometheus.Gauge
	BuffersProduced    prometheus.Counter
	BytesProduced      prometheus.Counter
	Seeks              prometheus.Counter
	PoolExhausted      prometheus.Counter
	BuffersOutstanding prometheus.Gauge
}

// New creates the collectors and registers them on reg. A nil reg leaves them
// unregistered, which is handy in tests.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		SourcesStarted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sources_started",
			Help:      "Number of tone sources currently started",
		}),
		BuffersProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffers_produced_total",
			Help:      "Total PCM buffers synthesized",
		}),
		BytesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_produced_total",
			Help:      "Total PCM bytes synthesized",
		}),
		Seeks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeks_total",
			Help:      "Total reads that repositioned the tone phase",
		}),
		PoolExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_exhausted_total",
			Help:      "Reads rejected because every pool buffer was outstanding",
		}),
		BuffersOutstanding: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buffers_outstanding",
			Help:      "Pool buffers currently held by consumers",
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SourcesStarted,
		m.BuffersProduced,
		m.BytesProduced,
		m.Seeks,
		m.PoolExhausted,
		m.BuffersOutstanding,
	}
}

func (m *Metrics) SourceStarted() {
	if m == nil {
		return
	}
	m.SourcesStarted.Inc()
}

func (m *Metrics) SourceStopped() {
	if m == nil {
		return
	}
	m.SourcesStarted.Dec()
}

// BufferProduced records one synthesized buffer of n bytes.
func (m *Metrics) BufferProduced(n int) {
	if m == nil {
		return
	}
	m.BuffersProduced.Inc()
	m.BytesProduced.Add(float64(n))
}

func (m *Metrics) Seek() {
	if m == nil {
		return
	}
	m.Seeks.Inc()
}

func (m *Metrics) Exhausted() {
	if m == nil {
		return
	}
	m.PoolExhausted.Inc()
}

// Outstanding adds delta to the outstanding-buffers gauge.
func (m *Metrics) Outstanding(delta int) {
	if m == nil {
		return
	}
	m.BuffersOutstanding.Add(float64(delta))
}
