package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	PVDisplayPath   string        // pvdisplay binary (or an override for testing)
	UseSudo         bool          // run pvdisplay through sudo
	ChartPath       string        // default output path for the HTML visualization
	Port            string        // serve mode listen port
	MetricsPath     string        // serve mode Prometheus endpoint
	CollectInterval time.Duration // serve mode re-parse interval
	LogLevel        string
}

// New creates a new configuration with default values, overridable through
// the environment.
func New() *Config {
	return &Config{
		PVDisplayPath:   getEnv("PVDISPLAY_PATH", "pvdisplay"),
		UseSudo:         getEnvBool("PVDISPLAY_SUDO", true),
		ChartPath:       getEnv("CHART_PATH", "lvm_segments.html"),
		Port:            getEnv("PORT", "9587"),
		MetricsPath:     getEnv("METRICS_PATH", "/metrics"),
		CollectInterval: getEnvDuration("COLLECT_INTERVAL", 60*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// fileConfig is the YAML file schema. Absent keys keep their defaults.
type fileConfig struct {
	PVDisplayPath   string `yaml:"pvdisplay_path"`
	UseSudo         *bool  `yaml:"use_sudo"`
	ChartPath       string `yaml:"chart_path"`
	Port            string `yaml:"port"`
	MetricsPath     string `yaml:"metrics_path"`
	CollectInterval string `yaml:"collect_interval"`
	LogLevel        string `yaml:"log_level"`
}

// Load builds the configuration from environment defaults and an optional
// YAML file. With an empty path the default locations are probed; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		candidates := []string{
			"/etc/lvm-segments-visualizer/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/lvm-segments-visualizer/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.PVDisplayPath != "" {
		cfg.PVDisplayPath = fc.PVDisplayPath
	}
	if fc.UseSudo != nil {
		cfg.UseSudo = *fc.UseSudo
	}
	if fc.ChartPath != "" {
		cfg.ChartPath = fc.ChartPath
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.MetricsPath != "" {
		cfg.MetricsPath = fc.MetricsPath
	}
	if fc.CollectInterval != "" {
		interval, err := time.ParseDuration(fc.CollectInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing collect_interval %q: %w", fc.CollectInterval, err)
		}
		cfg.CollectInterval = interval
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
