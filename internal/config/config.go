// Package config loads analyzer server configuration: defaults first,
// then an optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the analyzer server configuration.
type Config struct {
	Port        int      `yaml:"port"`
	AdminKey    string   `yaml:"admin_key"`
	CORSOrigins []string `yaml:"cors_origins"`

	// Analysis defaults applied when a request omits them.
	DefaultWeight float64 `yaml:"default_weight"`
	DefaultSize   float64 `yaml:"default_size"`

	// Directory for reports written by the admin export endpoint.
	ExportDir string `yaml:"export_dir"`

	RateLimits RateLimits `yaml:"rate_limits"`
	Live       Live       `yaml:"live"`
}

// RateLimits caps per-IP request rates on the compute endpoints.
type RateLimits struct {
	AnalyzePerMinute int `yaml:"analyze_per_minute"`
	SessionsPerHour  int `yaml:"sessions_per_hour"`
}

// Live bounds WebSocket live sessions.
type Live struct {
	MaxSessions     int `yaml:"max_sessions"`
	MaxMessageBytes int `yaml:"max_message_bytes"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int `yaml:"idle_timeout_sec"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:          8080,
		DefaultWeight: 0.5,
		DefaultSize:   1.0,
		ExportDir:     "reports",
		RateLimits: RateLimits{
			AnalyzePerMinute: 60,
			SessionsPerHour:  30,
		},
		Live: Live{
			MaxSessions:     64,
			MaxMessageBytes: 64 * 1024,
			WriteTimeoutSec: 5,
			IdleTimeoutSec:  300,
		},
	}
}

// Load overlays the YAML file at path (if path is non-empty) on the
// defaults, then applies environment overrides: CATANYLIZER_PORT,
// CATANYLIZER_ADMIN_KEY, CATANYLIZER_CORS (comma-separated origins).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CATANYLIZER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("CATANYLIZER_ADMIN_KEY"); v != "" {
		cfg.AdminKey = v
	}
	if v := os.Getenv("CATANYLIZER_CORS"); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.CORSOrigins = origins
	}
}
