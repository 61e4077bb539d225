// internal/sampler/sampler.go
package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/jointstream/internal/joint"
)

// Sampler runs one read-decode cycle against the device.
type Sampler struct {
	reader BlockReader
	now    func() time.Time
}

// New creates a sampler. now defaults to time.Now.
func New(reader BlockReader, now func() time.Time) (*Sampler, error) {
	if reader == nil {
		return nil, errors.New("sampler: reader required")
	}
	if now == nil {
		now = time.Now
	}
	return &Sampler{reader: reader, now: now}, nil
}

// SampleOnce performs exactly one cycle.
// All-or-nothing: any failure yields no measurement.
func (s *Sampler) SampleOnce(ctx context.Context) (joint.Measurement, error) {
	words, err := s.reader.ReadBlock(ctx, joint.BaseAddress, joint.BlockWords)
	if err != nil {
		return joint.Measurement{}, fmt.Errorf("sampler: read: %w", err)
	}

	m, err := joint.Decode(words, s.now())
	if err != nil {
		return joint.Measurement{}, fmt.Errorf("sampler: %w", err)
	}
	return m, nil
}
