package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg := New()

	if cfg.PVDisplayPath != "pvdisplay" {
		t.Errorf("Expected default pvdisplay path, got %s", cfg.PVDisplayPath)
	}
	if !cfg.UseSudo {
		t.Error("Expected sudo enabled by default")
	}
	if cfg.Port != "9587" {
		t.Errorf("Expected default port 9587, got %s", cfg.Port)
	}
	if cfg.MetricsPath != "/metrics" {
		t.Errorf("Expected default metrics path /metrics, got %s", cfg.MetricsPath)
	}
	if cfg.CollectInterval != 60*time.Second {
		t.Errorf("Expected default interval 60s, got %v", cfg.CollectInterval)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("PVDISPLAY_PATH", "/usr/local/sbin/pvdisplay")
	t.Setenv("PVDISPLAY_SUDO", "false")
	t.Setenv("COLLECT_INTERVAL", "90s")

	cfg := New()
	if cfg.PVDisplayPath != "/usr/local/sbin/pvdisplay" {
		t.Errorf("Expected env override for pvdisplay path, got %s", cfg.PVDisplayPath)
	}
	if cfg.UseSudo {
		t.Error("Expected sudo disabled through env")
	}
	if cfg.CollectInterval != 90*time.Second {
		t.Errorf("Expected 90s interval, got %v", cfg.CollectInterval)
	}
}

func TestConfigIntervalAsSeconds(t *testing.T) {
	t.Setenv("COLLECT_INTERVAL", "120")
	cfg := New()
	if cfg.CollectInterval != 120*time.Second {
		t.Errorf("Expected bare seconds to parse, got %v", cfg.CollectInterval)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
pvdisplay_path: /sbin/pvdisplay
use_sudo: false
chart_path: /tmp/layout.html
collect_interval: 2m
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PVDisplayPath != "/sbin/pvdisplay" {
		t.Errorf("Expected file override for pvdisplay path, got %s", cfg.PVDisplayPath)
	}
	if cfg.UseSudo {
		t.Error("Expected use_sudo false from file")
	}
	if cfg.ChartPath != "/tmp/layout.html" {
		t.Errorf("Expected chart path override, got %s", cfg.ChartPath)
	}
	if cfg.CollectInterval != 2*time.Minute {
		t.Errorf("Expected 2m interval, got %v", cfg.CollectInterval)
	}
	// Untouched keys keep their defaults.
	if cfg.Port != "9587" {
		t.Errorf("Expected default port preserved, got %s", cfg.Port)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file should not fail: %v", err)
	}
	if cfg.MetricsPath != "/metrics" {
		t.Errorf("Expected defaults, got metrics path %s", cfg.MetricsPath)
	}
}

func TestLoadBadInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("collect_interval: often\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unparseable interval")
	}
}
