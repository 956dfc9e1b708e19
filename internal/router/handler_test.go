package router

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestHandler_MergesInboundDatagramAndRebroadcasts(t *testing.T) {
	self := Endpoint("localhost:5000")
	localTr, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer localTr.Close()

	neighborTr, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer neighborTr.Close()

	neighborEp := Endpoint(fmt.Sprintf("localhost:%d", localPort(t, neighborTr)))
	neighbors := NeighborMap{neighborEp: 1}

	table := NewTable(self, neighbors)
	broadcaster := NewBroadcaster(localTr, neighbors, nil)
	handler := NewHandler(localTr, table, broadcaster, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handler.Run(ctx)

	payload, err := Encode(map[Endpoint]Route{
		"localhost:9000": {Cost: 1, NextHop: neighborEp},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	localAddr := fmt.Sprintf("localhost:%d", localPort(t, localTr))
	neighborTr.Send(Endpoint(localAddr), payload)

	if _, _, err := neighborTr.Receive(2 * time.Second); err != nil {
		t.Fatalf("expected the handler to re-broadcast the changed table to its neighbor: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := table.Snapshot()["localhost:9000"]; ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("handler did not merge inbound advertisement in time")
}
