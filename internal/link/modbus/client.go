// internal/link/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/jointstream/internal/link"
)

// Client implements link.Conn over Modbus TCP.
// Geometry only: it issues requests and unpacks raw register words.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Dial is a link.Dialer. It opens exactly one TCP connection.
func Dial(ctx context.Context, ep link.Endpoint) (link.Conn, error) {
	if ep.Host == "" {
		return nil, errors.New("modbus client: endpoint required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := modbus.NewTCPClientHandler(ep.Address())
	h.Timeout = ep.Timeout
	h.SlaveId = ep.UnitID

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ReadHoldingRegisters implements link.Conn (FC 3).
func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("modbus: read-registers byte count not even: %d", len(raw))
	}
	return unpackRegisters(raw), nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
