package router

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// receiveTimeout bounds each individual blocking Receive call so the
// handler loop wakes up often enough to notice context cancellation
// without a dedicated wakeup channel.
const receiveTimeout = time.Second

// Handler drains inbound datagrams and merges each one into the shared
// table. It owns no state of its own beyond the collaborators it was
// built with, so it can be driven directly in tests without a running
// goroutine.
type Handler struct {
	transport   *Transport
	table       *Table
	broadcaster *Broadcaster
	metrics     *Metrics
}

// NewHandler builds a Handler over the given transport and table. A merge
// that changes the table immediately re-broadcasts it, mirroring how a
// relay forwards an improved route to the rest of the mesh without
// waiting for the next periodic tick.
func NewHandler(transport *Transport, table *Table, broadcaster *Broadcaster, metrics *Metrics) *Handler {
	return &Handler{transport: transport, table: table, broadcaster: broadcaster, metrics: metrics}
}

// Run blocks, repeatedly receiving and merging datagrams, until ctx is
// canceled. A receive timeout is not an error: it is simply a chance to
// check ctx and loop again. A decode failure drops that one datagram and
// continues; it never terminates the loop, since one malformed peer must
// not take down the handler for everyone else.
func (h *Handler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, _, err := h.transport.Receive(receiveTimeout)
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			slog.Warn("router: receive failed", "error", err)
			continue
		}

		h.handleDatagram(payload)
	}
}

func (h *Handler) handleDatagram(payload []byte) {
	advertised, err := Decode(payload)
	if err != nil {
		slog.Warn("router: dropping malformed datagram", "error", err)
		if h.metrics != nil {
			h.metrics.DatagramDropped()
		}
		return
	}

	if h.metrics != nil {
		h.metrics.DatagramReceived()
	}

	changed := h.table.Merge(advertised)
	snapshot := h.table.Snapshot()
	if h.metrics != nil {
		h.metrics.MergeApplied(changed)
		h.metrics.SetTableSize(len(snapshot))
	}

	if changed && h.broadcaster != nil {
		h.broadcaster.Broadcast(snapshot)
	}
}
