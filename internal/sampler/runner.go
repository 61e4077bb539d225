// internal/sampler/runner.go
package sampler

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tamzrod/jointstream/internal/link"
)

// run is the ticker loop of one subscriber.
// One goroutine per subscriber. No overlap. No retries.
// Failures are silent towards the subscriber.
func (s *subscription) run(ctx context.Context, src Source, logger log.Logger) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m, err := src.SampleOnce(ctx)

		// Ticks that came due while this cycle was in flight are skipped, not queued.
		s.skipped.Add(drain(ticker.C))

		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.failed.Add(1)
			level.Debug(logger).Log("msg", "cycle produced no data", "kind", link.Kind(err), "err", err)
			continue
		}
		if m.IsMockData {
			s.failed.Add(1)
			level.Warn(logger).Log("msg", "dropping non-device measurement")
			continue
		}

		s.deliver(m)
		s.delivered.Add(1)
	}
}

func drain(c <-chan time.Time) uint64 {
	var n uint64
	for {
		select {
		case <-c:
			n++
		default:
			return n
		}
	}
}
