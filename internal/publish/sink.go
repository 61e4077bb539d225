// internal/publish/sink.go
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"

	"github.com/tamzrod/jointstream/internal/joint"
	"github.com/tamzrod/jointstream/internal/sampler"
)

// DefaultPublishTimeout bounds one PUBLISH round trip.
const DefaultPublishTimeout = 500 * time.Millisecond

// Publisher is the one redis command the sink needs.
// redis.UniversalClient satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Subscriptions is where the sink attaches. *sampler.Registry satisfies it.
type Subscriptions interface {
	Attach(interval time.Duration, deliver sampler.DeliverFunc) (string, error)
	Detach(id string) error
}

// Config tunes a Sink.
type Config struct {
	Channel  string
	Interval time.Duration
	Timeout  time.Duration
	Logger   log.Logger
}

// Sink is a registry subscriber that PUBLISHes every measurement as JSON.
// It is one more viewer: failed cycles publish nothing.
type Sink struct {
	pub      Publisher
	channel  string
	interval time.Duration
	timeout  time.Duration
	logger   log.Logger

	published atomic.Uint64
	failed    atomic.Uint64

	mu   sync.Mutex
	subs Subscriptions
	id   string
}

// NewSink validates cfg and builds a detached sink.
func NewSink(pub Publisher, cfg Config) (*Sink, error) {
	if pub == nil {
		return nil, errors.New("publish: publisher required")
	}
	if cfg.Channel == "" {
		return nil, errors.New("publish: channel required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPublishTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}

	return &Sink{
		pub:      pub,
		channel:  cfg.Channel,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   log.With(cfg.Logger, "component", "publish", "channel", cfg.Channel),
	}, nil
}

// Start attaches the sink to subs at its configured interval.
func (s *Sink) Start(subs Subscriptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs != nil {
		return errors.New("publish: sink already started")
	}
	id, err := subs.Attach(s.interval, s.Deliver)
	if err != nil {
		return fmt.Errorf("publish: attach: %w", err)
	}
	s.subs, s.id = subs, id

	level.Info(s.logger).Log("msg", "redis sink attached", "subscriber", id, "interval", s.interval)
	return nil
}

// Stop detaches the sink. Calling Stop on a stopped sink is a no-op.
func (s *Sink) Stop() error {
	s.mu.Lock()
	subs, id := s.subs, s.id
	s.subs, s.id = nil, ""
	s.mu.Unlock()

	if subs == nil {
		return nil
	}
	err := subs.Detach(id)
	if errors.Is(err, sampler.ErrUnknownSubscriber) {
		err = nil
	}
	level.Info(s.logger).Log("msg", "redis sink detached", "published", s.published.Load(), "failed", s.failed.Load())
	return err
}

// Deliver publishes one measurement. Errors are logged and counted, never returned.
func (s *Sink) Deliver(m joint.Measurement) {
	payload, err := json.Marshal(m)
	if err != nil {
		s.failed.Add(1)
		level.Error(s.logger).Log("msg", "marshal measurement", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.pub.Publish(ctx, s.channel, payload).Err(); err != nil {
		// First failure at warn, the rest at debug.
		if s.failed.Add(1) == 1 {
			level.Warn(s.logger).Log("msg", "publish failed", "err", err)
		} else {
			level.Debug(s.logger).Log("msg", "publish failed", "err", err)
		}
		return
	}
	s.published.Add(1)
}

// Published returns how many measurements reached the broker.
func (s *Sink) Published() uint64 { return s.published.Load() }

// Failed returns how many measurements could not be published.
func (s *Sink) Failed() uint64 { return s.failed.Load() }
