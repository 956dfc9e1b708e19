package router

import "log/slog"

// Broadcaster sends a table snapshot to every configured neighbor. It
// holds no table reference of its own — callers pass the snapshot they
// already captured, so the lock never has to be held across network I/O.
type Broadcaster struct {
	transport *Transport
	neighbors NeighborMap
	metrics   *Metrics
}

// NewBroadcaster builds a Broadcaster over the given transport and fixed
// neighbor set.
func NewBroadcaster(transport *Transport, neighbors NeighborMap, metrics *Metrics) *Broadcaster {
	return &Broadcaster{transport: transport, neighbors: neighbors, metrics: metrics}
}

// Broadcast encodes routes once and sends it to every neighbor in turn.
// Per-neighbor send failures are isolated inside Transport.Send and never
// abort the loop: one dead peer must not prevent the rest of the mesh from
// being kept up to date.
func (b *Broadcaster) Broadcast(routes map[Endpoint]Route) {
	payload, err := Encode(routes)
	if err != nil {
		slog.Error("router: encode table for broadcast failed", "error", err)
		return
	}

	for _, n := range b.neighbors.Endpoints() {
		b.transport.Send(n, payload)
	}
	if b.metrics != nil {
		b.metrics.BroadcastSent(len(b.neighbors))
	}
}
