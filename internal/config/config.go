// ABOUTME: Configuration loading and parsing for the zenshell server
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// BackendJSON and BackendSQLite name the available store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the complete zenshell server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Auth    AuthConfig    `yaml:"auth"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server address configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// StoreConfig selects and locates the document backend. SkipGuard disables
// the protective access-control artifact written next to a JSON data file.
type StoreConfig struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	SkipGuard bool   `yaml:"skip_guard"`
}

// AuthConfig holds credential and session token configuration. An empty
// JWTSecret makes the server generate an ephemeral one at startup.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`

	SessionTTL time.Duration `yaml:"-"`
	// Raw string value for YAML unmarshaling
	SessionTTLRaw string `yaml:"session_ttl"`
}

// LimitsConfig holds write-validation limits. MaxTags of zero disables the
// tag cap.
type LimitsConfig struct {
	MaxTags int `yaml:"max_tags"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no config file exists:
// a JSON document next to the working directory, guarded, three tags.
func Default() *Config {
	return &Config{
		Server: ServerConfig{HTTPAddr: "127.0.0.1:8080"},
		Store:  StoreConfig{Backend: BackendJSON, Path: "data.json"},
		Auth:   AuthConfig{SessionTTL: 12 * time.Hour},
		Limits: LimitsConfig{MaxTags: 3},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded. A
// missing file yields the defaults, matching the zero-configuration first
// run of the original deployment. ZENSHELL_DATA_PATH and
// ZENSHELL_SKIP_GUARD override the store location regardless of source.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides honors the environment knobs the original deployment
// used for Docker setups.
func applyEnvOverrides(cfg *Config) {
	if p := os.Getenv("ZENSHELL_DATA_PATH"); p != "" {
		cfg.Store.Path = p
	}
	if os.Getenv("ZENSHELL_SKIP_GUARD") == "true" {
		cfg.Store.SkipGuard = true
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Store.Backend != BackendJSON && c.Store.Backend != BackendSQLite {
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Store.Backend)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Limits.MaxTags < 0 {
		return fmt.Errorf("limits.max_tags must not be negative")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func parseDurations(cfg *Config) error {
	if cfg.Auth.SessionTTLRaw != "" {
		ttl, err := time.ParseDuration(cfg.Auth.SessionTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing session_ttl %q: %w", cfg.Auth.SessionTTLRaw, err)
		}
		cfg.Auth.SessionTTL = ttl
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 12 * time.Hour
	}
	return nil
}
