// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	d := cfg.Device
	if strings.TrimSpace(d.Host) == "" {
		return fmt.Errorf("device.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("device.port %d out of range 1..65535", d.Port)
	}
	if d.UnitID > 247 {
		return fmt.Errorf("device.unit_id %d out of range 0..247", d.UnitID)
	}
	if d.TimeoutMs <= 0 {
		return fmt.Errorf("device.timeout_ms must be > 0")
	}
	if d.MaxAttempts <= 0 {
		return fmt.Errorf("device.max_attempts must be > 0")
	}

	// ------------------------------------------------------------
	// SAMPLING
	// ------------------------------------------------------------

	s := cfg.Sampling
	if s.MinIntervalMs <= 0 {
		return fmt.Errorf("sampling.min_interval_ms must be > 0")
	}
	if s.IntervalMs < s.MinIntervalMs {
		return fmt.Errorf(
			"sampling.interval_ms %d below sampling.min_interval_ms %d",
			s.IntervalMs,
			s.MinIntervalMs,
		)
	}

	// ------------------------------------------------------------
	// HTTP
	// ------------------------------------------------------------

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1..65535", cfg.Server.Port)
	}

	// ------------------------------------------------------------
	// REDIS SINK (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Redis.Addr != "" {
		if cfg.Redis.Channel == "" {
			return fmt.Errorf("redis.addr is set but redis.channel is empty")
		}
		if cfg.Redis.IntervalMs < s.MinIntervalMs {
			return fmt.Errorf(
				"redis.interval_ms %d below sampling.min_interval_ms %d",
				cfg.Redis.IntervalMs,
				s.MinIntervalMs,
			)
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", cfg.Log.Level)
	}

	return nil
}
