// Package config provides configuration loading and structs for the legisview server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Cache     CacheConfig     `yaml:"cache"`
	Session   SessionConfig   `yaml:"session"`
	Templates TemplatesConfig `yaml:"templates"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
	// PublicURL is the externally visible base URL used in share links.
	// Empty means the request's own scheme and host.
	PublicURL string `yaml:"public_url" validate:"omitempty,url"`
}

// UpstreamConfig points at the archive REST API.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// CacheConfig holds the document cache settings.
type CacheConfig struct {
	Enabled      bool          `yaml:"enabled"`
	DatabasePath string        `yaml:"database_path" validate:"required_if=Enabled true"`
	TTL          time.Duration `yaml:"ttl" validate:"gte=0"`
}

// SessionConfig holds browsing session settings.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" validate:"required"`
	Capacity   int           `yaml:"capacity" validate:"min=1"`
	MaxAge     time.Duration `yaml:"max_age" validate:"gte=0"`
}

// TemplatesConfig selects where HTML templates are read from.
type TemplatesConfig struct {
	// Dir, when set, replaces the embedded templates and is watched for changes.
	Dir string `yaml:"dir"`
}

var validate = validator.New()

// Load reads and parses the config file at path, expands paths, applies defaults
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Cache.DatabasePath = expandPath(cfg.Cache.DatabasePath, configDir)
	if cfg.Templates.Dir != "" {
		cfg.Templates.Dir = expandPath(cfg.Templates.Dir, configDir)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its field constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
