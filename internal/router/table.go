package router

import (
	"sync"
	"time"
)

// Route is the record stored per destination: the cost to reach it, the
// neighbor to forward through (or self, for the self-route), and when it
// was last written.
type Route struct {
	Cost        float64   `json:"cost"`
	NextHop     Endpoint  `json:"next_hop"`
	LastUpdated time.Time `json:"last_updated"`
}

// Table is the shared, mutex-guarded routing table. It is the sole shared
// mutable state in a node: the inbound handler and the periodic updater
// write it, the broadcaster and the operator snapshot path read it, all
// through the same lock. The lock is intentionally a plain
// sync.Mutex, not an RWMutex — the table is small and writes are at least
// as frequent as reads, so reader/writer separation buys nothing here.
type Table struct {
	self Endpoint

	mu     sync.Mutex
	routes map[Endpoint]Route
}

// NewTable creates a table seeded with a self-route at cost 0, plus one
// route per configured neighbor at its direct link cost.
func NewTable(self Endpoint, neighbors NeighborMap) *Table {
	t := &Table{
		self:   self,
		routes: make(map[Endpoint]Route, len(neighbors)+1),
	}
	now := time.Now()
	t.routes[self] = Route{Cost: 0, NextHop: self, LastUpdated: now}
	for ep, cost := range neighbors {
		t.routes[ep] = Route{Cost: cost, NextHop: ep, LastUpdated: now}
	}
	return t
}

// Self returns the node's own endpoint.
func (t *Table) Self() Endpoint {
	return t.self
}

// Snapshot returns a point-in-time copy of the table, safe to hand to a
// caller that will read it without holding any lock.
func (t *Table) Snapshot() map[Endpoint]Route {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyLocked()
}

func (t *Table) copyLocked() map[Endpoint]Route {
	cp := make(map[Endpoint]Route, len(t.routes))
	for ep, r := range t.routes {
		cp[ep] = r
	}
	return cp
}

// withLock runs fn with the table lock held and reports whether fn
// reported a change. It centralizes the "hold the single exclusive lock"
// rule so Merge and Relax cannot accidentally diverge from it.
func (t *Table) withLock(fn func() bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn()
}

// Merge applies an advertised table from a neighbor's broadcast: any
// destination not equal to self that is either absent locally or strictly
// cheaper than the current route is adopted verbatim,
// including the advertiser's claimed next_hop. Equal-cost advertisements
// are ignored to prevent oscillation. Reports whether anything changed.
func (t *Table) Merge(advertised map[Endpoint]Route) bool {
	return t.withLock(func() bool {
		changed := false
		for dest, route := range advertised {
			if dest == t.self {
				continue
			}
			current, ok := t.routes[dest]
			if !ok || route.Cost < current.Cost {
				t.routes[dest] = route
				changed = true
			}
		}
		return changed
	})
}
