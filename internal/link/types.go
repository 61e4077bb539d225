// internal/link/types.go
package link

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultMaxAttempts is the number of consecutive failed connects after which
// EnsureConnected stops dialing.
const DefaultMaxAttempts = 5

// DefaultTimeout bounds every connect and every register read.
const DefaultTimeout = 2 * time.Second

// Endpoint is the immutable device address.
type Endpoint struct {
	Host    string
	Port    int
	UnitID  uint8
	Timeout time.Duration
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Conn is one open protocol session.
// It is not safe for concurrent use; the Manager serializes access.
type Conn interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	Close() error
}

// Dialer opens a new session. ONE attempt per call.
type Dialer func(ctx context.Context, ep Endpoint) (Conn, error)

// State is a point-in-time view of the session.
type State struct {
	Connected bool
	Attempts  int
}

// Transition is reported on every connect outcome and on every loss of the session.
type Transition struct {
	State State
	Err   error // nil on successful connect
}
