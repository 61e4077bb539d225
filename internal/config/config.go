// internal/config/config.go
package config

type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Sampling SamplingConfig `yaml:"sampling"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	UnitID      uint8  `yaml:"unit_id"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	MaxAttempts int    `yaml:"max_attempts"`
}

// ---- SAMPLING ----

type SamplingConfig struct {
	IntervalMs    int `yaml:"interval_ms"`     // default per-viewer cadence
	MinIntervalMs int `yaml:"min_interval_ms"` // lower bound a viewer may request
}

// ---- HTTP ----

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"` // optional
}

// ---- REDIS SINK (OPTIONAL) ----

type RedisConfig struct {
	Addr       string `yaml:"addr"` // empty => disabled
	Channel    string `yaml:"channel"`
	IntervalMs int    `yaml:"interval_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}
