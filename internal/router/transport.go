package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// recvBufferSize is the receive buffer size: at least 4096 bytes.
// Datagrams larger than this are truncated by the kernel before we ever
// see them, which then fails to decode and is dropped like any other
// malformed payload.
const recvBufferSize = 4096

// ErrTimeout is returned by Receive when no datagram arrived within the
// requested timeout. Callers use it exactly like a normal loop-continue
// condition; it is not an error worth logging.
var ErrTimeout = errors.New("router: receive timeout")

// Transport is a connectionless UDP datagram endpoint bound to
// 0.0.0.0:<port> with SO_REUSEADDR enabled. It makes no delivery
// guarantees: Send swallows failures, and Receive folds OS-level
// connection-reset indications into ErrTimeout so a prior send to a dead
// peer can never surface as a fatal error on an unrelated Receive call.
type Transport struct {
	conn *net.UDPConn

	closeOnce sync.Once
}

// NewTransport binds a UDP socket on 0.0.0.0:port with address reuse
// enabled.
func NewTransport(port int) (*Transport, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				ctrlErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), "udp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return nil, fmt.Errorf("bind udp 0.0.0.0:%d: %w", port, err)
	}

	return &Transport{conn: pc.(*net.UDPConn)}, nil
}

// Send resolves dest and emits one datagram carrying payload. Failures are
// logged and swallowed, never returned to the caller: a lost advertisement
// is self-healed by the next periodic broadcast.
func (tr *Transport) Send(dest Endpoint, payload []byte) {
	addr, err := net.ResolveUDPAddr("udp", string(dest))
	if err != nil {
		slog.Warn("router: resolve neighbor failed", "endpoint", dest, "error", err)
		return
	}
	if _, err := tr.conn.WriteToUDP(payload, addr); err != nil {
		slog.Warn("router: send failed", "endpoint", dest, "error", err)
	}
}

// Receive blocks for up to timeout waiting for one datagram, returning its
// payload and source address. It returns ErrTimeout both on an ordinary
// deadline expiry and on an OS connection-reset indication: a datagram
// socket can surface a late ICMP port-unreachable from an earlier send as
// an error on a completely unrelated Receive call, and that must never be
// mistaken for a fatal transport failure.
func (tr *Transport) Receive(timeout time.Duration) ([]byte, net.Addr, error) {
	if err := tr.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, nil, fmt.Errorf("set read deadline: %w", err)
	}

	buf := make([]byte, recvBufferSize)
	n, addr, err := tr.conn.ReadFromUDP(buf)
	if err != nil {
		if isTimeoutOrReset(err) {
			return nil, nil, ErrTimeout
		}
		return nil, nil, err
	}
	return buf[:n], addr, nil
}

// Close shuts down the socket exactly once, unblocking any in-flight
// Receive call. The supervisor owns this call; everyone else only ever
// sees the resulting error classified as "expected after stop".
func (tr *Transport) Close() error {
	var err error
	tr.closeOnce.Do(func() {
		err = tr.conn.Close()
	})
	return err
}

func isTimeoutOrReset(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, unix.ECONNREFUSED) || errors.Is(err, unix.ECONNRESET)
}
