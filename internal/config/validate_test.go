// internal/config/validate_test.go
package config

import "testing"

// helper to build a valid config quickly
func valid() *Config {
	return Default()
}

// ---- tests ----

func TestValidate_DefaultsOK(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyHost(t *testing.T) {
	cfg := valid()
	cfg.Device.Host = "  "

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected host error, got nil")
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		cfg := valid()
		cfg.Device.Port = port

		if err := Validate(cfg); err == nil {
			t.Fatalf("port=%d: expected error, got nil", port)
		}
	}
}

func TestValidate_UnitIDAboveModbusRange(t *testing.T) {
	cfg := valid()
	cfg.Device.UnitID = 248

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unit id error, got nil")
	}
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	cfg := valid()
	cfg.Device.TimeoutMs = 0

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected timeout error, got nil")
	}
}

func TestValidate_NonPositiveMaxAttempts(t *testing.T) {
	cfg := valid()
	cfg.Device.MaxAttempts = 0

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected max_attempts error, got nil")
	}
}

func TestValidate_IntervalBelowMinimum(t *testing.T) {
	cfg := valid()
	cfg.Sampling.IntervalMs = 10
	cfg.Sampling.MinIntervalMs = 20

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_RedisRequiresChannel(t *testing.T) {
	cfg := valid()
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Channel = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected channel error, got nil")
	}
}

func TestValidate_RedisDisabledIgnoresChannel(t *testing.T) {
	cfg := valid()
	cfg.Redis.Addr = ""
	cfg.Redis.Channel = ""

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	cfg := valid()
	cfg.Log.Level = "verbose"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log level error, got nil")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := valid()
	cfg.Device.Host = " 10.0.0.1 "
	cfg.Log.Level = "DEBUG"

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device.Host != " 10.0.0.1 " || cfg.Log.Level != "DEBUG" {
		t.Fatalf("Validate mutated config: %+v", cfg)
	}

	Normalize(cfg)
	if cfg.Device.Host != "10.0.0.1" || cfg.Log.Level != "debug" {
		t.Fatalf("Normalize did not normalize: host=%q level=%q", cfg.Device.Host, cfg.Log.Level)
	}
}
