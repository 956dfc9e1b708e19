package router

import (
	"context"
	"time"
)

// UpdateInterval is the period between periodic relaxation passes.
const UpdateInterval = 5 * time.Second

// Updater drives the periodic side of convergence: on every tick it runs
// one Bellman-Ford pass and, if anything improved, re-broadcasts the
// table. Between ticks the table only moves in response to inbound
// merges handled by Handler.
type Updater struct {
	table       *Table
	neighbors   NeighborMap
	broadcaster *Broadcaster
	metrics     *Metrics
	interval    time.Duration
}

// NewUpdater builds an Updater using the default UpdateInterval.
func NewUpdater(table *Table, neighbors NeighborMap, broadcaster *Broadcaster, metrics *Metrics) *Updater {
	return &Updater{
		table:       table,
		neighbors:   neighbors,
		broadcaster: broadcaster,
		metrics:     metrics,
		interval:    UpdateInterval,
	}
}

// Run blocks, ticking every interval, until ctx is canceled.
func (u *Updater) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.tick()
		}
	}
}

func (u *Updater) tick() {
	changed := u.table.Relax(u.neighbors)
	snapshot := u.table.Snapshot()
	if u.metrics != nil {
		u.metrics.RelaxPass(changed)
		u.metrics.SetTableSize(len(snapshot))
	}
	if changed {
		u.broadcaster.Broadcast(snapshot)
	}
}
