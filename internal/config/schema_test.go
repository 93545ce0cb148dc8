package config_test

import (
	"testing"
	"time"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/config"
)

func TestDefaultProvider_Configured(t *testing.T) {
	cfg := &config.Config{}
	cfg.Defaults.Provider = "r2"
	if got := cfg.DefaultProvider(); got != backend.ProviderR2 {
		t.Errorf("DefaultProvider() = %v, want r2", got)
	}
}

func TestDefaultProvider_UnknownFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Defaults.Provider = "dropbox"
	if got := cfg.DefaultProvider(); got != backend.ProviderCloudinary {
		t.Errorf("DefaultProvider() = %v, want cloudinary fallback", got)
	}
}

func TestDefaultProvider_EmptyFallsBack(t *testing.T) {
	cfg := &config.Config{}
	if got := cfg.DefaultProvider(); got != backend.ProviderCloudinary {
		t.Errorf("DefaultProvider() = %v, want cloudinary fallback", got)
	}
}

func TestDaemonTimeout(t *testing.T) {
	d := config.DaemonConfig{TimeoutSeconds: 90}
	if got := d.Timeout(); got != 90*time.Second {
		t.Errorf("Timeout() = %v, want 90s", got)
	}
}

func TestExpandHome_NoTilde(t *testing.T) {
	if got := config.ExpandHome("/var/log/x.log"); got != "/var/log/x.log" {
		t.Errorf("ExpandHome = %q", got)
	}
}
