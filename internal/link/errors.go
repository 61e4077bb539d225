// internal/link/errors.go
package link

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrConnection covers refused, unreachable and DNS failures.
	ErrConnection = errors.New("link: connection failed")
	// ErrTimeout means the device did not answer within Endpoint.Timeout.
	ErrTimeout = errors.New("link: timeout")
	// ErrRead is a protocol-level failure in the middle of a request.
	ErrRead = errors.New("link: read failed")
	// ErrCircuitOpen means the attempt cap was reached; only an explicit Connect clears it.
	ErrCircuitOpen = errors.New("link: too many failed connection attempts")
	// ErrNotConnected is returned by ReadRegisters without a live session.
	ErrNotConnected = errors.New("link: not connected")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("link: closed")
)

// Kind returns a short label for logs.
// Errors with a Kind() method label themselves; anything else is "other".
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrClosed):
		return "closed"
	case errors.Is(err, ErrNotConnected), errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrRead):
		return "read"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}

	type kinder interface{ Kind() string }
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "other"
}

// classify tags a transport error with its taxonomy sentinel.
// fallback is ErrConnection for dials and ErrRead for reads.
func classify(err, fallback error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
