// internal/sampler/types.go
package sampler

import (
	"context"
	"time"

	"github.com/tamzrod/jointstream/internal/joint"
)

// DefaultInterval is the per-subscriber cadence when none is requested.
const DefaultInterval = 100 * time.Millisecond

// BlockReader is the device side of a cycle: ensure a session, then read once.
// *link.Manager satisfies it.
type BlockReader interface {
	ReadBlock(ctx context.Context, addr, qty uint16) ([]uint16, error)
}

// Source produces one measurement per call or an error.
// *Sampler satisfies it; tests substitute fakes.
type Source interface {
	SampleOnce(ctx context.Context) (joint.Measurement, error)
}

// DeliverFunc receives a measurement for exactly one subscriber.
// It runs on that subscriber's goroutine and should not block for long.
type DeliverFunc func(joint.Measurement)
