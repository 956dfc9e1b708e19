package router

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Node ties together a transport, a routing table, and the two background
// goroutines (inbound handler, periodic updater) that keep the table
// converging. It is the top-level object a caller constructs once per
// running router.
type Node struct {
	Self      Endpoint
	Table     *Table
	Neighbors NeighborMap
	Metrics   *Metrics

	transport   *Transport
	broadcaster *Broadcaster
	handler     *Handler
	updater     *Updater

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNode binds a transport on port, seeds a table from neighbors, and
// wires up the handler, updater, and broadcaster around it. Metrics are
// registered against reg; pass prometheus.NewRegistry() in tests to avoid
// colliding with other Node instances.
func NewNode(port int, neighbors NeighborMap, reg prometheus.Registerer) (*Node, error) {
	self := Self(port)

	transport, err := NewTransport(port)
	if err != nil {
		return nil, fmt.Errorf("new node: %w", err)
	}

	metrics := NewMetrics(reg)
	table := NewTable(self, neighbors)
	broadcaster := NewBroadcaster(transport, neighbors, metrics)
	handler := NewHandler(transport, table, broadcaster, metrics)
	updater := NewUpdater(table, neighbors, broadcaster, metrics)

	return &Node{
		Self:        self,
		Table:       table,
		Neighbors:   neighbors,
		Metrics:     metrics,
		transport:   transport,
		broadcaster: broadcaster,
		handler:     handler,
		updater:     updater,
	}, nil
}

// Start launches the inbound handler and periodic updater goroutines.
// It returns immediately; call Stop (or cancel a parent context passed
// through Run) to shut them down.
func (n *Node) Start(ctx context.Context) {
	ctx, n.cancel = context.WithCancel(ctx)

	n.wg.Add(2)
	go func() {
		defer n.wg.Done()
		n.handler.Run(ctx)
	}()
	go func() {
		defer n.wg.Done()
		n.updater.Run(ctx)
	}()
}

// Stop cancels the background goroutines, closes the underlying socket to
// unblock any in-flight Receive, and waits for the goroutines to return.
// It is safe to call once after Start.
func (n *Node) Stop() error {
	if n.cancel != nil {
		n.cancel()
	}
	err := n.transport.Close()
	n.wg.Wait()
	return err
}

// Snapshot returns the current routing table, for the operator console
// and the admin HTTP surface to read without reaching into internals.
func (n *Node) Snapshot() map[Endpoint]Route {
	return n.Table.Snapshot()
}
