package router

import (
	"fmt"
	"net"
	"testing"
	"time"
)

func localPort(t *testing.T, tr *Transport) int {
	t.Helper()
	addr, ok := tr.conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		t.Fatalf("unexpected local addr type %T", tr.conn.LocalAddr())
	}
	return addr.Port
}

func TestTransport_SendReceive_RoundTrips(t *testing.T) {
	recv, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer recv.Close()

	send, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer send.Close()

	dest := Endpoint(fmt.Sprintf("localhost:%d", localPort(t, recv)))
	send.Send(dest, []byte("hello"))

	payload, _, err := recv.Receive(2 * time.Second)
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if string(payload) != "hello" {
		t.Errorf("expected payload %q, got %q", "hello", payload)
	}
}

func TestTransport_Receive_TimesOutWithNoTraffic(t *testing.T) {
	tr, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	defer tr.Close()

	_, _, err = tr.Receive(50 * time.Millisecond)
	if err != ErrTimeout {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestTransport_Close_IsIdempotent(t *testing.T) {
	tr, err := NewTransport(0)
	if err != nil {
		t.Fatalf("NewTransport failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}
