package router

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RelaxPass_IncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RelaxPass(true)
	m.RelaxPass(false)

	if got := testutil.ToFloat64(m.relaxPasses); got != 2 {
		t.Errorf("expected 2 relax passes, got %v", got)
	}
	if got := testutil.ToFloat64(m.relaxChanged); got != 1 {
		t.Errorf("expected 1 changed pass, got %v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RelaxPass(true)
	m.BroadcastSent(3)
	m.DatagramReceived()
	m.DatagramDropped()
	m.MergeApplied(true)
	m.SetTableSize(5)
}
