package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
app:
  title: "Test Admin"
  login_path: "/login"
  home_path: "/"
storage:
  path: "/tmp/test.db"
  prefix: "Test_"
http:
  base_url: "http://localhost:9090/api"
  timeout_seconds: 12
auth:
  token_key: "access_token"
  token_ttl_seconds: 21600
server:
  host: "127.0.0.1"
  port: 9090
  jwt:
    secret: "test-secret-key-at-least-32-chars!"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Title != "Test Admin" {
		t.Errorf("App.Title = %q, want %q", cfg.App.Title, "Test Admin")
	}
	if cfg.Storage.Path != "/tmp/test.db" {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, "/tmp/test.db")
	}
	if cfg.HTTP.BaseURL != "http://localhost:9090/api" {
		t.Errorf("HTTP.BaseURL = %q, want %q", cfg.HTTP.BaseURL, "http://localhost:9090/api")
	}
	if got := cfg.TokenTTL(); got != 21600*time.Second {
		t.Errorf("TokenTTL() = %v, want %v", got, 21600*time.Second)
	}
	if got := cfg.RequestTimeout(); got != 12*time.Second {
		t.Errorf("RequestTimeout() = %v, want %v", got, 12*time.Second)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	content := `
app:
  title: "Test"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Error("Load() expected validation error for missing JWT secret, got nil")
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	content := `
server:
  jwt:
    secret: "too-short"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Error("Load() expected validation error for short JWT secret, got nil")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	content := `
storage:
  path: "/tmp/from-file.db"
server:
  jwt:
    secret: "test-secret-key-at-least-32-chars!"
`
	t.Setenv("NAVIGUARD_STORAGE_PATH", "/tmp/from-env.db")

	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Path != "/tmp/from-env.db" {
		t.Errorf("Storage.Path = %q, want env override %q", cfg.Storage.Path, "/tmp/from-env.db")
	}
}

func TestDefault_ReferenceConstants(t *testing.T) {
	cfg := Default()

	if cfg.Auth.TokenTTLSeconds != 21600 {
		t.Errorf("default token TTL = %d seconds, want 21600", cfg.Auth.TokenTTLSeconds)
	}
	if cfg.HTTP.TimeoutSeconds != 12 {
		t.Errorf("default request timeout = %d seconds, want 12", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Auth.TokenKey != "access_token" {
		t.Errorf("default token key = %q, want %q", cfg.Auth.TokenKey, "access_token")
	}
	if len(cfg.App.Whitelist) == 0 || cfg.App.Whitelist[0] != "/login" {
		t.Errorf("default whitelist = %v, want [/login]", cfg.App.Whitelist)
	}
}

func TestValidate_BadTimeout(t *testing.T) {
	cfg := Default()
	cfg.Server.JWT.Secret = "test-secret-key-at-least-32-chars!"
	cfg.HTTP.TimeoutSeconds = 0

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for zero timeout, got nil")
	}
}
