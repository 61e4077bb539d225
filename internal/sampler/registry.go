// internal/sampler/registry.go
package sampler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// DefaultMaxSubscribers bounds concurrent subscribers per registry.
const DefaultMaxSubscribers = 64

var (
	ErrUnknownSubscriber  = errors.New("sampler: unknown subscriber")
	ErrIntervalTooShort   = errors.New("sampler: interval below minimum")
	ErrTooManySubscribers = errors.New("sampler: too many subscribers")
	ErrRegistryClosed     = errors.New("sampler: registry closed")
)

// RegistryConfig tunes a Registry. Zero values pick defaults.
type RegistryConfig struct {
	MinInterval    time.Duration
	MaxSubscribers int
	Logger         log.Logger
}

// Stats are per-subscriber cycle counters.
type Stats struct {
	Delivered uint64
	Failed    uint64
	Skipped   uint64
}

// Registry maps subscriber id -> cadence + delivery target.
// Each subscriber ticks on its own goroutine; device access is serialized
// further down by the link manager.
type Registry struct {
	src         Source
	minInterval time.Duration
	maxSubs     int
	logger      log.Logger

	mu     sync.Mutex
	subs   map[string]*subscription
	closed bool
}

type subscription struct {
	id       string
	interval time.Duration
	deliver  DeliverFunc
	cancel   context.CancelFunc
	done     chan struct{}

	delivered atomic.Uint64
	failed    atomic.Uint64
	skipped   atomic.Uint64
}

// NewRegistry creates an empty registry over src.
func NewRegistry(src Source, cfg RegistryConfig) (*Registry, error) {
	if src == nil {
		return nil, errors.New("sampler: source required")
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = time.Millisecond
	}
	if cfg.MaxSubscribers <= 0 {
		cfg.MaxSubscribers = DefaultMaxSubscribers
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}

	return &Registry{
		src:         src,
		minInterval: cfg.MinInterval,
		maxSubs:     cfg.MaxSubscribers,
		logger:      log.With(cfg.Logger, "component", "registry"),
		subs:        make(map[string]*subscription),
	}, nil
}

// Attach registers a subscriber and starts its ticker.
// interval <= 0 means DefaultInterval. The first cycle runs one interval after attach.
func (r *Registry) Attach(interval time.Duration, deliver DeliverFunc) (string, error) {
	if deliver == nil {
		return "", errors.New("sampler: deliver func required")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if interval < r.minInterval {
		return "", fmt.Errorf("%w: %s < %s", ErrIntervalTooShort, interval, r.minInterval)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrRegistryClosed
	}
	if len(r.subs) >= r.maxSubs {
		return "", ErrTooManySubscribers
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{
		id:       uuid.NewString(),
		interval: interval,
		deliver:  deliver,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	r.subs[sub.id] = sub

	go sub.run(ctx, r.src, log.With(r.logger, "subscriber", sub.id))

	level.Info(r.logger).Log("msg", "subscriber attached", "subscriber", sub.id, "interval", interval, "subscribers", len(r.subs))
	return sub.id, nil
}

// Detach stops a subscriber and waits for its goroutine to exit.
// When Detach returns, no further delivery to that subscriber can happen.
// It must not be called from inside the subscriber's own DeliverFunc.
func (r *Registry) Detach(id string) error {
	r.mu.Lock()
	sub, ok := r.subs[id]
	if ok {
		delete(r.subs, id)
	}
	remaining := len(r.subs)
	r.mu.Unlock()

	if !ok {
		return ErrUnknownSubscriber
	}

	sub.stop()
	level.Info(r.logger).Log("msg", "subscriber detached", "subscriber", id, "subscribers", remaining)
	return nil
}

// Stats returns the counters of a live subscriber.
func (r *Registry) Stats(id string) (Stats, bool) {
	r.mu.Lock()
	sub, ok := r.subs[id]
	r.mu.Unlock()

	if !ok {
		return Stats{}, false
	}
	return sub.stats(), true
}

// Len returns the number of live subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Close detaches every subscriber and refuses new ones.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	subs := r.subs
	r.subs = make(map[string]*subscription)
	r.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
	level.Info(r.logger).Log("msg", "registry closed", "detached", len(subs))
}

func (s *subscription) stop() {
	s.cancel()
	<-s.done
}

func (s *subscription) stats() Stats {
	return Stats{
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
		Skipped:   s.skipped.Load(),
	}
}
