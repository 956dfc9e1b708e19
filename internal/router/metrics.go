package router

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes Prometheus counters and gauges for the routing engine.
// All fields are safe for concurrent use, since prometheus collectors
// already internalize their own locking.
type Metrics struct {
	relaxPasses      prometheus.Counter
	relaxChanged     prometheus.Counter
	broadcastsSent   prometheus.Counter
	datagramsRecv    prometheus.Counter
	datagramsDropped prometheus.Counter
	mergesApplied    prometheus.Counter
	tableSize        prometheus.Gauge
}

// NewMetrics registers a fresh set of collectors against reg. Passing a
// dedicated registry (rather than prometheus.DefaultRegisterer) keeps
// repeated construction in tests from panicking on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		relaxPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dvrouter",
			Name:      "relax_passes_total",
			Help:      "Number of Bellman-Ford relaxation passes run.",
		}),
		relaxChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dvrouter",
			Name:      "relax_changed_total",
			Help:      "Number of relaxation passes that changed at least one route.",
		}),
		broadcastsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dvrouter",
			Name:      "broadcasts_sent_total",
			Help:      "Number of per-neighbor table advertisements sent.",
		}),
		datagramsRecv: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dvrouter",
			Name:      "datagrams_received_total",
			Help:      "Number of inbound datagrams successfully decoded.",
		}),
		datagramsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dvrouter",
			Name:      "datagrams_dropped_total",
			Help:      "Number of inbound datagrams dropped due to decode errors.",
		}),
		mergesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dvrouter",
			Name:      "merges_applied_total",
			Help:      "Number of inbound merges that changed at least one route.",
		}),
		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dvrouter",
			Name:      "table_size",
			Help:      "Current number of destinations known to the routing table.",
		}),
	}

	reg.MustRegister(
		m.relaxPasses,
		m.relaxChanged,
		m.broadcastsSent,
		m.datagramsRecv,
		m.datagramsDropped,
		m.mergesApplied,
		m.tableSize,
	)
	return m
}

// RelaxPass records the outcome of one Relax call.
func (m *Metrics) RelaxPass(changed bool) {
	if m == nil {
		return
	}
	m.relaxPasses.Inc()
	if changed {
		m.relaxChanged.Inc()
	}
}

// BroadcastSent records one broadcast fan-out to n neighbors.
func (m *Metrics) BroadcastSent(n int) {
	if m == nil {
		return
	}
	m.broadcastsSent.Add(float64(n))
}

// DatagramReceived records one successfully decoded inbound datagram.
func (m *Metrics) DatagramReceived() {
	if m == nil {
		return
	}
	m.datagramsRecv.Inc()
}

// DatagramDropped records one inbound datagram that failed to decode.
func (m *Metrics) DatagramDropped() {
	if m == nil {
		return
	}
	m.datagramsDropped.Inc()
}

// MergeApplied records the outcome of one Merge call.
func (m *Metrics) MergeApplied(changed bool) {
	if m == nil {
		return
	}
	if changed {
		m.mergesApplied.Inc()
	}
}

// SetTableSize records the current number of known destinations.
func (m *Metrics) SetTableSize(n int) {
	if m == nil {
		return
	}
	m.tableSize.Set(float64(n))
}
