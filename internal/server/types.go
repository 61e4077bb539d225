// internal/server/types.go
package server

import (
	"context"
	"time"

	"github.com/tamzrod/jointstream/internal/joint"
	"github.com/tamzrod/jointstream/internal/link"
	"github.com/tamzrod/jointstream/internal/sampler"
	"github.com/tamzrod/jointstream/internal/status"
)

// Link is the slice of *link.Manager the HTTP surface needs.
type Link interface {
	Connect(ctx context.Context) error
	State() link.State
	MaxAttempts() int
}

// Sampler performs one on-demand cycle. *sampler.Sampler satisfies it.
type Sampler interface {
	SampleOnce(ctx context.Context) (joint.Measurement, error)
}

// Subscriptions is the streaming fan-out. *sampler.Registry satisfies it.
type Subscriptions interface {
	Attach(interval time.Duration, deliver sampler.DeliverFunc) (string, error)
	Detach(id string) error
}

// StatusFeed pushes connection status. *status.Hub satisfies it.
type StatusFeed interface {
	Last() status.Snapshot
	Subscribe() (int, <-chan status.Snapshot)
	Unsubscribe(id int)
}

// Deps are the collaborators behind the routes. All are required.
type Deps struct {
	Link          Link
	Sampler       Sampler
	Subscriptions Subscriptions
	Status        StatusFeed
}

// ReadResponse is the body of GET /read-data.
type ReadResponse struct {
	Success bool               `json:"success"`
	Data    *joint.Measurement `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
}

// ReconnectResponse is the body of POST /reconnect.
type ReconnectResponse struct {
	Success bool            `json:"success"`
	Status  status.Snapshot `json:"status"`
}

// ErrResponse is rendered for every request that fails before a body was written.
type ErrResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SSE event names.
const (
	EventConnectionStatus = "connectionStatus"
	EventRobotData        = "robotData"
)

// StreamBuffer is the per-stream queue of measurements awaiting the client.
// A full queue drops the newest measurement; polling is never held up.
const StreamBuffer = 16
