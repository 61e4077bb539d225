// internal/link/writer.go
package link

import (
	"context"
	"errors"
)

// ErrWriteDisabled is returned by every Writer shipped with this module.
var ErrWriteDisabled = errors.New("link: device writes are disabled")

// Writer is the control-path capability: pushing joint targets to the controller.
// Manager does not implement it; reading never requires a Writer.
type Writer interface {
	WriteJoints(ctx context.Context, addr uint16, joints []float32) error
}

// DisabledWriter rejects all writes.
type DisabledWriter struct{}

// WriteJoints implements Writer.
func (DisabledWriter) WriteJoints(context.Context, uint16, []float32) error {
	return ErrWriteDisabled
}
