// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Device.Host = strings.TrimSpace(cfg.Device.Host)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// Static assets are optional; a blank dir disables them.
	cfg.Server.StaticDir = strings.TrimSpace(cfg.Server.StaticDir)
}
