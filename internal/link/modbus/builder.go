// internal/link/modbus/builder.go
package modbus

import (
	"time"

	"github.com/go-kit/log"

	cfg "github.com/tamzrod/jointstream/internal/config"
	"github.com/tamzrod/jointstream/internal/link"
)

// Build constructs a link.Manager wired to the Modbus TCP dialer.
// It does not dial: the caller decides when the initial connect happens.
// The session is reused while healthy; on transport death the manager discards
// it and dials again on a future cycle, up to the configured attempt cap.
func Build(d cfg.DeviceConfig, onTransition func(link.Transition), logger log.Logger) (*link.Manager, error) {
	return link.New(
		link.Config{
			Endpoint: link.Endpoint{
				Host:    d.Host,
				Port:    d.Port,
				UnitID:  d.UnitID,
				Timeout: time.Duration(d.TimeoutMs) * time.Millisecond,
			},
			MaxAttempts:  d.MaxAttempts,
			OnTransition: onTransition,
			Logger:       logger,
		},
		Dial,
	)
}
