// internal/link/manager.go
package link

import (
	"context"
	"errors"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Config is the minimal runtime config the manager needs.
type Config struct {
	Endpoint    Endpoint
	MaxAttempts int

	// OnTransition is called synchronously while the exchange lock is held.
	// It must not call back into the Manager.
	OnTransition func(Transition)

	Logger log.Logger
}

// Manager owns the single session to the device.
//
// Every exchange (connect or read) runs while holding a one-slot semaphore,
// so at most one protocol request is in flight. State() never waits on it.
type Manager struct {
	ep          Endpoint
	maxAttempts int
	dial        Dialer
	notify      func(Transition)
	logger      log.Logger

	exch chan struct{}

	// guarded by exch
	conn   Conn
	closed bool

	// readable without exch
	mu        sync.RWMutex
	connected bool
	attempts  int
}

// New creates a manager in state Disconnected(0). It does not dial.
func New(cfg Config, dial Dialer) (*Manager, error) {
	if cfg.Endpoint.Host == "" {
		return nil, errors.New("link: endpoint host required")
	}
	if cfg.Endpoint.Port <= 0 || cfg.Endpoint.Port > 65535 {
		return nil, errors.New("link: endpoint port out of range")
	}
	if dial == nil {
		return nil, errors.New("link: dialer required")
	}
	if cfg.Endpoint.Timeout <= 0 {
		cfg.Endpoint.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}

	return &Manager{
		ep:          cfg.Endpoint,
		maxAttempts: cfg.MaxAttempts,
		dial:        dial,
		notify:      cfg.OnTransition,
		logger:      log.With(cfg.Logger, "component", "link", "endpoint", cfg.Endpoint.Address()),
		exch:        make(chan struct{}, 1),
	}, nil
}

// Endpoint returns the configured device address.
func (m *Manager) Endpoint() Endpoint { return m.ep }

// MaxAttempts returns the circuit-breaker cap.
func (m *Manager) MaxAttempts() int { return m.maxAttempts }

// State returns the current connection flag and attempt counter.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{Connected: m.connected, Attempts: m.attempts}
}

// Connect opens a fresh session, replacing any existing one.
// It ignores the attempt cap: this is the explicit trigger that clears it.
func (m *Manager) Connect(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	if m.closed {
		return ErrClosed
	}
	return m.connectLocked(ctx)
}

// EnsureConnected returns true if a session is live, dialing once if allowed.
// Once Attempts reaches MaxAttempts it returns false without touching the network.
func (m *Manager) EnsureConnected(ctx context.Context) bool {
	if err := m.acquire(ctx); err != nil {
		return false
	}
	defer m.release()

	return m.ensureLocked(ctx) == nil
}

// ReadRegisters performs exactly one holding-register request.
// Any failure drops the session so the next cycle reconnects. No retries.
func (m *Manager) ReadRegisters(ctx context.Context, addr, qty uint16) ([]uint16, error) {
	if err := m.acquire(ctx); err != nil {
		return nil, err
	}
	defer m.release()

	return m.readLocked(addr, qty)
}

// ReadBlock is EnsureConnected followed by ReadRegisters as one exclusive exchange.
func (m *Manager) ReadBlock(ctx context.Context, addr, qty uint16) ([]uint16, error) {
	if err := m.acquire(ctx); err != nil {
		return nil, err
	}
	defer m.release()

	if err := m.ensureLocked(ctx); err != nil {
		return nil, err
	}
	return m.readLocked(addr, qty)
}

// Close waits for any in-flight exchange, then closes the session.
// Further calls return ErrClosed.
func (m *Manager) Close() error {
	m.exch <- struct{}{}
	defer m.release()

	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.conn != nil {
		err = m.conn.Close()
		m.conn = nil
	}
	m.markDisconnected()

	level.Info(m.logger).Log("msg", "device session closed")
	return err
}

// ---- internal (exch held) ----

func (m *Manager) acquire(ctx context.Context) error {
	// select picks randomly among ready cases; a done ctx must win.
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case m.exch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release() { <-m.exch }

func (m *Manager) ensureLocked(ctx context.Context) error {
	if m.closed {
		return ErrClosed
	}

	st := m.State()
	if st.Connected {
		return nil
	}
	if st.Attempts >= m.maxAttempts {
		level.Debug(m.logger).Log("msg", "connect suppressed", "attempts", st.Attempts)
		return ErrCircuitOpen
	}

	level.Info(m.logger).Log("msg", "device not connected, reconnecting", "attempts", st.Attempts)
	return m.connectLocked(ctx)
}

// connectLocked dials once. A caller that gave up is not a device failure:
// a done ctx returns ctx.Err() without counting an attempt or emitting.
func (m *Manager) connectLocked(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Session is replaced, never repaired.
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}

	conn, err := m.dial(ctx, m.ep)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			level.Debug(m.logger).Log("msg", "connect abandoned by caller", "err", ctxErr)
			return ctxErr
		}
		err = classify(err, ErrConnection)
		attempts := m.markFailedAttempt()
		level.Error(m.logger).Log("msg", "connect failed", "attempts", attempts, "kind", Kind(err), "err", err)
		m.emit(err)
		return err
	}

	m.conn = conn
	m.markConnected()
	level.Info(m.logger).Log("msg", "connected to device", "unit_id", m.ep.UnitID)
	m.emit(nil)
	return nil
}

func (m *Manager) readLocked(addr, qty uint16) ([]uint16, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if m.conn == nil || !m.State().Connected {
		return nil, ErrNotConnected
	}

	regs, err := m.conn.ReadHoldingRegisters(addr, qty)
	if err != nil {
		err = classify(err, ErrRead)
		_ = m.conn.Close()
		m.conn = nil
		m.markDisconnected()
		level.Error(m.logger).Log("msg", "read failed, session dropped", "addr", addr, "qty", qty, "kind", Kind(err), "err", err)
		m.emit(err)
		return nil, err
	}
	return regs, nil
}

func (m *Manager) markConnected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
	m.attempts = 0
}

func (m *Manager) markFailedAttempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	m.attempts++
	return m.attempts
}

func (m *Manager) markDisconnected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
}

func (m *Manager) emit(err error) {
	if m.notify == nil {
		return
	}
	m.notify(Transition{State: m.State(), Err: err})
}
