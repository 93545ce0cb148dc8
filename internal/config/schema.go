package config

import (
	"time"

	"github.com/blackwell-systems/optibridge/internal/backend"
)

// Config is the top-level optibridge client configuration. Provider
// credentials are not here — they live daemon-side and are edited
// through the settings passthrough.
type Config struct {
	Daemon   DaemonConfig   `mapstructure:"daemon" yaml:"daemon"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// DaemonConfig holds connection settings for the local daemon.
type DaemonConfig struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultsConfig holds default values for operations.
type DefaultsConfig struct {
	Provider       string `mapstructure:"provider" yaml:"provider"` // "cloudinary" or "r2"
	CopyOnComplete bool   `mapstructure:"copy_on_complete" yaml:"copy_on_complete"`
	LogFile        string `mapstructure:"log_file" yaml:"log_file"`
}

// Timeout returns the daemon request timeout as a duration.
func (d DaemonConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// DefaultProvider returns the configured default provider, falling back
// to the first supported provider when unset or unknown.
func (c *Config) DefaultProvider() backend.Provider {
	p := backend.Provider(c.Defaults.Provider)
	if p.Valid() {
		return p
	}
	return backend.Providers()[0]
}
