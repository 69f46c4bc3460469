package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunInvalidConfigPath(t *testing.T) {
	err := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatalf("expected missing config error")
	}
}

func TestRunInvalidEnvPort(t *testing.T) {
	t.Setenv("FOLIOSERVD_PORT", "bad")
	t.Setenv("FOLIOSERVD_TOKEN_SECRET", "secret")
	t.Setenv("FOLIOSERVD_ADMIN_PASSWORD", "password")
	err := run(nil)
	if err == nil {
		t.Fatalf("expected invalid env port error")
	}
}

func TestRunConfigValidationFailure(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("port: 70000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	err := run([]string{"--config", configPath})
	if err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestRunMissingEnvFile(t *testing.T) {
	err := run([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	if err == nil {
		t.Fatalf("expected missing env file error")
	}
}
