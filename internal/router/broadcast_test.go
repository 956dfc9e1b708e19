package router

import (
	"fmt"
	"testing"
	"time"
)

func TestBroadcaster_SendsToEveryNeighbor(t *testing.T) {
	recvA, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer recvA.Close()
	recvB, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer recvB.Close()

	send, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer send.Close()

	epA := Endpoint(fmt.Sprintf("localhost:%d", localPort(t, recvA)))
	epB := Endpoint(fmt.Sprintf("localhost:%d", localPort(t, recvB)))
	neighbors := NeighborMap{epA: 1, epB: 1}

	b := NewBroadcaster(send, neighbors, nil)
	b.Broadcast(map[Endpoint]Route{"localhost:9000": {Cost: 1, NextHop: epA}})

	for _, recv := range []*Transport{recvA, recvB} {
		payload, _, err := recv.Receive(2 * time.Second)
		if err != nil {
			t.Fatalf("Receive failed: %v", err)
		}
		decoded, err := Decode(payload)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if _, ok := decoded["localhost:9000"]; !ok {
			t.Error("expected broadcast payload to contain localhost:9000")
		}
	}
}
