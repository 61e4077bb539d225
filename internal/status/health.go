// internal/status/health.go
package status

import (
	"time"

	"github.com/tamzrod/jointstream/internal/link"
)

// Health is the health probe body. Pure read, no side effects.
type Health struct {
	Status             string `json:"status"`
	PLCConnected       bool   `json:"plcConnected"`
	ServerTime         string `json:"serverTime"`
	ConnectionAttempts int    `json:"connectionAttempts"`
}

// NewHealth builds a Health from a link state.
// ServerTime is ISO-8601 UTC with millisecond precision.
func NewHealth(st link.State, now time.Time) Health {
	return Health{
		Status:             HealthOK,
		PLCConnected:       st.Connected,
		ServerTime:         now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		ConnectionAttempts: st.Attempts,
	}
}
