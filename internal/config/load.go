// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvDeviceHost   = "PLC_HOST"
	EnvDevicePort   = "PLC_PORT"
	EnvDeviceUnitID = "PLC_UNIT_ID"
	EnvServerPort   = "PORT"
	EnvRedisAddr    = "REDIS_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Host:        "192.168.0.2",
			Port:        502,
			UnitID:      1,
			TimeoutMs:   2000,
			MaxAttempts: 5,
		},
		Sampling: SamplingConfig{
			IntervalMs:    100,
			MinIntervalMs: 20,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Redis: RedisConfig{
			Channel:    "robot:joints",
			IntervalMs: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads an optional YAML file on top of Default, then applies env overrides.
// An empty path means defaults + env only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := env(EnvDeviceHost); v != "" {
		cfg.Device.Host = v
	}
	if v := env(EnvDevicePort); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s: %w", EnvDevicePort, err)
		}
		cfg.Device.Port = n
	}
	if v := env(EnvDeviceUnitID); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("config: invalid %s: %w", EnvDeviceUnitID, err)
		}
		cfg.Device.UnitID = uint8(n)
	}
	if v := env(EnvServerPort); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s: %w", EnvServerPort, err)
		}
		cfg.Server.Port = n
	}
	if v := env(EnvRedisAddr); v != "" {
		cfg.Redis.Addr = v
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
