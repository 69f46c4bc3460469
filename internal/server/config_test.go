package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfigYAML() string {
	return `
bind: 0.0.0.0
port: 9600
dataDir: /tmp/folioservd-test
logLevel: debug
tokenSecret: yaml-secret
adminPassword: yaml-password
`
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FOLIOSERVD_TOKEN_SECRET", "env-secret")
	t.Setenv("FOLIOSERVD_ADMIN_PASSWORD", "env-password")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BindAddr != DefaultBindAddr || cfg.Port != DefaultPort {
		t.Fatalf("unexpected listen defaults: %s:%d", cfg.BindAddr, cfg.Port)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Fatalf("data dir = %q", cfg.DataDir)
	}
	if cfg.AdminUsername != DefaultAdminUsername {
		t.Fatalf("admin username = %q", cfg.AdminUsername)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("token ttl = %v", cfg.TokenTTL)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("max upload bytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.ListenAddr() != "127.0.0.1:9500" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr())
	}
}

func TestLoadConfigYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(validConfigYAML()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BindAddr != "0.0.0.0" || cfg.Port != 9600 {
		t.Fatalf("yaml listen values not applied: %s:%d", cfg.BindAddr, cfg.Port)
	}
	if cfg.TokenSecret != "yaml-secret" {
		t.Fatalf("token secret = %q", cfg.TokenSecret)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(validConfigYAML()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOLIOSERVD_PORT", "9700")
	t.Setenv("FOLIOSERVD_TOKEN_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 9700 {
		t.Fatalf("env port override not applied: %d", cfg.Port)
	}
	if cfg.TokenSecret != "env-secret" {
		t.Fatalf("env token secret not applied: %q", cfg.TokenSecret)
	}
	if cfg.BindAddr != "0.0.0.0" {
		t.Fatalf("yaml bind lost under env overrides: %q", cfg.BindAddr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.TokenSecret = "secret"
		cfg.AdminPassword = "password"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"blank bind", func(c *Config) { c.BindAddr = " " }},
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"blank data dir", func(c *Config) { c.DataDir = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"missing token secret", func(c *Config) { c.TokenSecret = "" }},
		{"missing admin username", func(c *Config) { c.AdminUsername = " " }},
		{"missing admin password", func(c *Config) { c.AdminPassword = "" }},
		{"zero upload cap", func(c *Config) { c.MaxUploadBytes = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
