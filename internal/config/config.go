// Package config loads weightlog settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// ValidBackends lists all supported storage backends.
var ValidBackends = []string{BackendFile, BackendPostgres, BackendMemory}

// Config is the full runtime configuration.
type Config struct {
	// Backend selects where the document is stored.
	Backend string `yaml:"backend"`
	// DataPath is the backing file for the file backend. Empty means
	// $HOME/.weightlogger/data.json.
	DataPath    string `yaml:"data_path,omitempty"`
	DatabaseURL string `yaml:"database_url,omitempty"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	WebDir string `yaml:"web_dir,omitempty"`
	// FileRoot is the directory API requests may name files in. Empty
	// disables server-side file access.
	FileRoot string `yaml:"file_root,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig describes the single owner allowed on the HTTP surface.
type AuthConfig struct {
	// Required refuses to serve without credentials configured.
	Required     bool       `yaml:"required"`
	Owner        string     `yaml:"owner,omitempty"`
	PasswordHash string     `yaml:"password_hash,omitempty"`
	Email        string     `yaml:"email,omitempty"`
	OIDC         OIDCConfig `yaml:"oidc"`
}

// OIDCConfig holds the SSO client settings.
type OIDCConfig struct {
	Issuer       string `yaml:"issuer,omitempty"`
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
	RedirectURL  string `yaml:"redirect_url,omitempty"`
}

// Enabled reports whether any login method is configured.
func (a AuthConfig) Enabled() bool {
	return a.PasswordHash != "" || a.OIDC.Issuer != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendFile,
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		Log:     LogConfig{Level: "info"},
	}
}

// DefaultPath returns $HOME/.weightlogger/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".weightlogger", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.DataPath, "WEIGHTLOG_DATA")
	set(&c.Backend, "WEIGHTLOG_BACKEND")
	set(&c.DatabaseURL, "DATABASE_URL")
	set(&c.Server.Addr, "ADDR")
	set(&c.Server.WebDir, "WEB_DIR")
	set(&c.Server.FileRoot, "WEIGHTLOG_FILE_ROOT")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Auth.Owner, "WEIGHTLOG_OWNER")
	set(&c.Auth.PasswordHash, "WEIGHTLOG_PASSWORD_HASH")
	set(&c.Auth.Email, "WEIGHTLOG_OWNER_EMAIL")
	set(&c.Auth.OIDC.Issuer, "OIDC_ISSUER")
	set(&c.Auth.OIDC.ClientID, "OIDC_CLIENT_ID")
	set(&c.Auth.OIDC.ClientSecret, "OIDC_CLIENT_SECRET")
	set(&c.Auth.OIDC.RedirectURL, "OIDC_REDIRECT_URL")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Backend) {
		return fmt.Errorf("invalid backend: %s (valid: %v)", c.Backend, ValidBackends)
	}
	if c.Backend == BackendPostgres && c.DatabaseURL == "" {
		return errors.New("postgres backend requires DATABASE_URL")
	}

	a := c.Auth
	if a.Required && !a.Enabled() {
		return errors.New("auth required but neither a password hash nor OIDC is configured")
	}
	if a.PasswordHash != "" && a.Owner == "" {
		return errors.New("password hash configured without an owner username")
	}
	if a.OIDC.Issuer != "" {
		if a.OIDC.ClientID == "" || a.OIDC.RedirectURL == "" {
			return errors.New("OIDC requires client_id and redirect_url")
		}
		if a.Email == "" {
			return errors.New("OIDC requires the owner email")
		}
	}
	return nil
}
