package router

import "time"

// Relax performs one Bellman-Ford pass over the table using the node's
// neighbor links and reports whether any destination improved.
//
// For every destination D other than self, and every neighbor N, the
// candidate cost to D via N is link(N) + min(cost of routes whose next_hop
// is N). If that candidate is strictly cheaper than D's current cost, D is
// rewritten to go via N. A single call is one pass; convergence across the
// network comes from repeated passes driven by the periodic updater and by
// incoming advertisements, not from iterating to a fixed point here. Left
// unchecked across a link failure this is susceptible to the classic
// count-to-infinity pathology; no split-horizon or poisoned-reverse is
// implemented.
func (t *Table) Relax(neighbors NeighborMap) bool {
	return t.withLock(func() bool {
		changed := false
		now := time.Now()

		for dest := range t.routes {
			if dest == t.self {
				continue
			}
			for _, n := range neighbors.Endpoints() {
				link, _ := neighbors.Cost(n)
				via, ok := t.cheapestRouteViaLocked(n)
				if !ok {
					continue
				}
				candidate := link + via
				if candidate < t.routes[dest].Cost {
					t.routes[dest] = Route{Cost: candidate, NextHop: n, LastUpdated: now}
					changed = true
				}
			}
		}
		return changed
	})
}

// cheapestRouteViaLocked returns the minimum cost among stored routes
// whose next_hop is n. Caller must hold t.mu.
func (t *Table) cheapestRouteViaLocked(n Endpoint) (float64, bool) {
	best := 0.0
	found := false
	for _, r := range t.routes {
		if r.NextHop != n {
			continue
		}
		if !found || r.Cost < best {
			best = r.Cost
			found = true
		}
	}
	return best, found
}
