// internal/publish/sink_test.go
package publish

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/jointstream/internal/joint"
	"github.com/tamzrod/jointstream/internal/sampler"
)

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	err  error
	sent []published
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		return redis.NewIntResult(0, assert.AnError)
	}
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.sent = append(f.sent, published{channel: channel, payload: message.([]byte)})
	return redis.NewIntResult(1, nil)
}

type fakeSubscriptions struct {
	interval time.Duration
	deliver  sampler.DeliverFunc
	detached []string
}

func (f *fakeSubscriptions) Attach(interval time.Duration, deliver sampler.DeliverFunc) (string, error) {
	f.interval, f.deliver = interval, deliver
	return "sub-1", nil
}

func (f *fakeSubscriptions) Detach(id string) error {
	f.detached = append(f.detached, id)
	return nil
}

var sample = joint.Measurement{
	Joint1: 45, Joint2: -30, Joint3: 90, Joint4: 0.5, Joint5: -120.25, Joint6: 10,
	Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

func TestNewSink_Validation(t *testing.T) {
	_, err := NewSink(nil, Config{Channel: "c"})
	assert.Error(t, err)

	_, err = NewSink(&fakePublisher{}, Config{})
	assert.Error(t, err)
}

func TestSink_DeliverPublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	s, err := NewSink(pub, Config{Channel: "robot:joints"})
	require.NoError(t, err)

	s.Deliver(sample)

	require.Len(t, pub.sent, 1)
	assert.Equal(t, "robot:joints", pub.sent[0].channel)

	var got joint.Measurement
	require.NoError(t, json.Unmarshal(pub.sent[0].payload, &got))
	assert.Equal(t, sample.Joints(), got.Joints())
	assert.True(t, sample.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, uint64(1), s.Published())
	assert.Equal(t, uint64(0), s.Failed())
}

func TestSink_DeliverFailureIsCounted(t *testing.T) {
	pub := &fakePublisher{err: redis.ErrClosed}
	s, err := NewSink(pub, Config{Channel: "robot:joints"})
	require.NoError(t, err)

	require.NotPanics(t, func() {
		s.Deliver(sample)
		s.Deliver(sample)
	})
	assert.Equal(t, uint64(0), s.Published())
	assert.Equal(t, uint64(2), s.Failed())
}

func TestSink_StartStop(t *testing.T) {
	pub := &fakePublisher{}
	subs := &fakeSubscriptions{}
	s, err := NewSink(pub, Config{Channel: "c", Interval: 250 * time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, s.Start(subs))
	assert.Equal(t, 250*time.Millisecond, subs.interval)
	require.NotNil(t, subs.deliver)
	assert.Error(t, s.Start(subs), "second start")

	subs.deliver(sample)
	assert.Len(t, pub.sent, 1)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	assert.Equal(t, []string{"sub-1"}, subs.detached)
}

func TestNewRedisClient(t *testing.T) {
	_, err := NewRedisClient("")
	assert.Error(t, err)

	c, err := NewRedisClient("localhost:6379")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = NewRedisClient("redis://localhost:6379/not-a-db")
	assert.Error(t, err)
}
