package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for naviguard.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// AppConfig contains application-level settings used by the navigation layer.
type AppConfig struct {
	// Title is the base document title. Route titles are rendered as
	// "<route title> | <base title>".
	Title string `yaml:"title"`

	// LoginPath is the path unauthenticated navigations are redirected to.
	LoginPath string `yaml:"login_path"`

	// HomePath is where authenticated users landing on LoginPath are sent.
	HomePath string `yaml:"home_path"`

	// Whitelist is the set of paths reachable without a credential.
	Whitelist []string `yaml:"whitelist"`
}

// StorageConfig contains settings for the durable credential cache medium.
type StorageConfig struct {
	// Prefix namespaces every key before it touches the medium, so multiple
	// logical stores can share one physical medium without collision.
	Prefix string `yaml:"prefix"`

	// Path is the filesystem path to the SQLite database file backing the
	// durable medium. The directory is created if it doesn't exist.
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging for better concurrent access.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int `yaml:"busy_timeout"`
}

// HTTPConfig contains settings for the outbound HTTP pipeline.
type HTTPConfig struct {
	// BaseURL is prepended to every request path.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the fixed per-request timeout. A timeout surfaces
	// through the same error-normalisation path as any other network error.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// AuthConfig contains credential lifecycle settings.
type AuthConfig struct {
	// TokenKey is the reserved cache key the bearer credential is stored under.
	TokenKey string `yaml:"token_key"`

	// TokenTTLSeconds is the fixed validity window of a stored credential.
	TokenTTLSeconds int `yaml:"token_ttl_seconds"`
}

// ServerConfig contains settings for the embedded development API server.
type ServerConfig struct {
	Host string    `yaml:"host"`
	Port int       `yaml:"port"`
	JWT  JWTConfig `yaml:"jwt"`
}

// JWTConfig contains token issuance settings for the development API server.
// The client treats issued tokens as opaque strings.
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: NAVIGUARD_SECTION_KEY
// For example: NAVIGUARD_STORAGE_PATH, NAVIGUARD_HTTP_BASE_URL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with the reference defaults: a 6-hour credential
// window, a 12-second request timeout, and the /login whitelist.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Title:     "Naviguard Admin",
			LoginPath: "/login",
			HomePath:  "/",
			Whitelist: []string{"/login"},
		},
		Storage: StorageConfig{
			Prefix:      "Vue_Naive_Admin_",
			Path:        "./data/naviguard.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		HTTP: HTTPConfig{
			BaseURL:        "http://127.0.0.1:8080/api",
			TimeoutSeconds: 12,
		},
		Auth: AuthConfig{
			TokenKey:        "access_token",
			TokenTTLSeconds: 6 * 60 * 60,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			JWT: JWTConfig{
				TTLMinutes: 360,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: NAVIGUARD_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NAVIGUARD_APP_TITLE"); v != "" {
		cfg.App.Title = v
	}
	if v := os.Getenv("NAVIGUARD_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("NAVIGUARD_STORAGE_PREFIX"); v != "" {
		cfg.Storage.Prefix = v
	}
	if v := os.Getenv("NAVIGUARD_HTTP_BASE_URL"); v != "" {
		cfg.HTTP.BaseURL = v
	}
	if v := os.Getenv("NAVIGUARD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	// JWT secret (always override in production)
	if v := os.Getenv("NAVIGUARD_JWT_SECRET"); v != "" {
		cfg.Server.JWT.Secret = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Title == "" {
		errs = append(errs, "app.title is required")
	}
	if c.App.LoginPath == "" {
		errs = append(errs, "app.login_path is required")
	}

	if c.Storage.Path == "" {
		errs = append(errs, "storage.path is required")
	}

	if c.HTTP.TimeoutSeconds <= 0 {
		errs = append(errs, "http.timeout_seconds must be positive")
	}

	if c.Auth.TokenKey == "" {
		errs = append(errs, "auth.token_key is required")
	}
	if c.Auth.TokenTTLSeconds <= 0 {
		errs = append(errs, "auth.token_ttl_seconds must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	// The development server signs real tokens; a weak secret would let
	// anyone forge a session against it.
	const minJWTSecretLength = 32
	if c.Server.JWT.Secret == "" {
		errs = append(errs, "server.jwt.secret is required (set NAVIGUARD_JWT_SECRET environment variable)")
	} else if len(c.Server.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "server.jwt.secret must be at least 32 characters")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// RequestTimeout returns the HTTP pipeline request timeout as a Duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// TokenTTL returns the credential validity window as a Duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLSeconds) * time.Second
}
