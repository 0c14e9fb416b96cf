// Package config manages host configuration: the preferred manager,
// per-tool executable overrides, pin behavior, and execution timeouts.
//
// Settings live in $XDG_CONFIG_HOME/nvman/config.yaml and every key can
// be overridden through the environment with an NVMAN_ prefix, e.g.
// NVMAN_MANAGER_PREFERRED=fnm.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Keys understood by the settings surface.
const (
	KeyPreferredManager = "manager.preferred"
	KeyPinAutoApply     = "pin.autoApply"
	KeyExecTimeout      = "exec.timeout"
	KeyIndexURL         = "index.url"
	KeyIndexTTL         = "index.ttl"

	toolPathPrefix = "paths."
)

const configFileName = "config.yaml"

// Settings is the loaded configuration. The zero value is not usable;
// construct through Load.
type Settings struct {
	v    *viper.Viper
	path string
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, "nvman")
}

// Load reads configuration from dir (DefaultDir when empty). A missing
// config file is not an error; defaults and environment overrides still
// apply.
func Load(dir string) (*Settings, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("NVMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPreferredManager, "auto")
	v.SetDefault(KeyPinAutoApply, false)
	v.SetDefault(KeyExecTimeout, time.Duration(0))
	v.SetDefault(KeyIndexURL, "")
	v.SetDefault(KeyIndexTTL, 24*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	return &Settings{v: v, path: filepath.Join(dir, configFileName)}, nil
}

// PreferredManager returns the configured tool name, or "auto".
func (s *Settings) PreferredManager() string {
	return s.v.GetString(KeyPreferredManager)
}

// ToolPath returns the configured executable override for a tool, or "".
func (s *Settings) ToolPath(tool string) string {
	return s.v.GetString(toolPathPrefix + tool)
}

// PinAutoApply reports whether discovered pins apply without prompting.
func (s *Settings) PinAutoApply() bool {
	return s.v.GetBool(KeyPinAutoApply)
}

// ExecTimeout returns the per-command timeout; zero means unbounded.
func (s *Settings) ExecTimeout() time.Duration {
	return s.v.GetDuration(KeyExecTimeout)
}

// IndexURL returns the release index override, or "" for the canonical
// feed.
func (s *Settings) IndexURL() string {
	return s.v.GetString(KeyIndexURL)
}

// IndexTTL returns how long the cached release index stays fresh.
func (s *Settings) IndexTTL() time.Duration {
	return s.v.GetDuration(KeyIndexTTL)
}

// Set updates a key in memory. Call Save to persist.
func (s *Settings) Set(key string, value any) {
	s.v.Set(key, value)
}

// Save writes the current settings to the config file, creating it when
// missing.
func (s *Settings) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

// Path returns the config file location this Settings persists to.
func (s *Settings) Path() string {
	return s.path
}
