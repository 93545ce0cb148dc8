package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "optibridge", "config.yml")
}

// Load reads the config from disk (or env). A missing file is fine —
// every field has a default.
func Load(path string) (*Config, error) {
	// A local .env can override the daemon address during development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("daemon.base_url", "http://127.0.0.1:7843")
	v.SetDefault("daemon.timeout_seconds", 120)
	v.SetDefault("defaults.provider", "cloudinary")
	v.SetDefault("defaults.copy_on_complete", true)
	v.SetDefault("defaults.log_file", defaultLogFile())

	v.SetEnvPrefix("OPTIBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("OPTIBRIDGE_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine — defaults apply.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Defaults.LogFile = ExpandHome(cfg.Defaults.LogFile)
	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "optibridge", "debug.log")
}
