// Package config handles reading and writing the cnf configuration file (~/.cnf/config.toml).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/scbrown/cnf/internal/model"
)

// DefaultListenAddr is where "cnf serve" listens and where hooks look for it.
const DefaultListenAddr = "localhost:7274"

// Config holds cnf configuration settings. Empty fields fall back to the
// defaults reported by the accessor methods.
type Config struct {
	IndexPath     string `toml:"index_path,omitempty"`
	InstallPrefix string `toml:"install_prefix,omitempty"`
	ListenAddr    string `toml:"listen_addr,omitempty"`
	RemoteURL     string `toml:"remote_url,omitempty"`
	LogLevel      string `toml:"log_level,omitempty"`
	DefaultFormat string `toml:"default_format,omitempty"`
}

// ValidKeys returns the sorted list of valid configuration keys.
func ValidKeys() []string {
	return []string{"default_format", "index_path", "install_prefix", "listen_addr", "log_level", "remote_url"}
}

// Dir returns the cnf data directory (~/.cnf).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cnf"
	}
	return filepath.Join(home, ".cnf")
}

// Path returns the default config file path (~/.cnf/config.toml).
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from a specific path. Returns an empty Config if
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific path, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Index returns the configured index path, defaulting to ~/.cnf/index.db.
func (c *Config) Index() string {
	if c.IndexPath != "" {
		return c.IndexPath
	}
	return filepath.Join(Dir(), "index.db")
}

// Prefix returns the install command prefix.
func (c *Config) Prefix() string {
	if c.InstallPrefix != "" {
		return c.InstallPrefix
	}
	return model.DefaultInstallPrefix
}

// Listen returns the daemon listen address.
func (c *Config) Listen() string {
	if c.ListenAddr != "" {
		return c.ListenAddr
	}
	return DefaultListenAddr
}

// Remote returns the URL hooks use to reach the daemon.
func (c *Config) Remote() string {
	if c.RemoteURL != "" {
		return c.RemoteURL
	}
	return "http://" + c.Listen()
}

// Level returns the configured log level, defaulting to warn.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if c.LogLevel == "" || err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}

// Get returns the string value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "index_path":
		return c.IndexPath, nil
	case "install_prefix":
		return c.InstallPrefix, nil
	case "listen_addr":
		return c.ListenAddr, nil
	case "remote_url":
		return c.RemoteURL, nil
	case "log_level":
		return c.LogLevel, nil
	case "default_format":
		return c.DefaultFormat, nil
	default:
		return "", unknownKey(key)
	}
}

// Set assigns a value to a configuration key. An empty value resets the key
// to its default.
func (c *Config) Set(key, value string) error {
	switch key {
	case "index_path":
		c.IndexPath = value
	case "install_prefix":
		c.InstallPrefix = strings.TrimSpace(value)
	case "listen_addr":
		c.ListenAddr = value
	case "remote_url":
		if value != "" {
			u, err := url.Parse(value)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("remote_url must be an absolute URL such as http://localhost:7274, got %q", value)
			}
		}
		c.RemoteURL = value
	case "log_level":
		if value != "" {
			if _, err := zapcore.ParseLevel(value); err != nil {
				return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", value)
			}
		}
		c.LogLevel = value
	case "default_format":
		if value != "" && value != "table" && value != "json" {
			return fmt.Errorf("default_format must be \"table\" or \"json\", got %q", value)
		}
		c.DefaultFormat = value
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
}
