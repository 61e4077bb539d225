// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDeviceHost, EnvDevicePort, EnvDeviceUnitID, EnvServerPort, EnvRedisAddr, EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_NoFileGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "192.168.0.2", cfg.Device.Host)
	assert.Equal(t, 502, cfg.Device.Port)
	assert.Equal(t, 2000, cfg.Device.TimeoutMs)
	assert.Equal(t, 5, cfg.Device.MaxAttempts)
	assert.Equal(t, 100, cfg.Sampling.IntervalMs)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
device:
  host: 10.1.2.3
  port: 1502
  unit_id: 7
sampling:
  interval_ms: 250
server:
  static_dir: public
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3", cfg.Device.Host)
	assert.Equal(t, 1502, cfg.Device.Port)
	assert.Equal(t, uint8(7), cfg.Device.UnitID)
	assert.Equal(t, 2000, cfg.Device.TimeoutMs) // untouched default
	assert.Equal(t, 250, cfg.Sampling.IntervalMs)
	assert.Equal(t, "public", cfg.Server.StaticDir)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "device:\n  hots: 1.2.3.4\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDeviceHost, "plc.local")
	t.Setenv(EnvDevicePort, "5020")
	t.Setenv(EnvDeviceUnitID, "3")
	t.Setenv(EnvServerPort, "8080")
	t.Setenv(EnvRedisAddr, "redis:6379")

	cfg, err := Load(writeFile(t, "device:\n  host: 10.1.2.3\n"))
	require.NoError(t, err)
	assert.Equal(t, "plc.local", cfg.Device.Host)
	assert.Equal(t, 5020, cfg.Device.Port)
	assert.Equal(t, uint8(3), cfg.Device.UnitID)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_InvalidEnv(t *testing.T) {
	for _, key := range []string{EnvDevicePort, EnvDeviceUnitID, EnvServerPort} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-number")

			cfg, err := Load("")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), key)
		})
	}
}
