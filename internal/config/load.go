package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file searched for in standard locations.
const FileName = "gltftool.yaml"

// EnvConfig names an environment variable holding a config file path. It is
// consulted when -config is not given.
const EnvConfig = "GLTFTOOL_CONFIG"

// Load builds the configuration from defaults, then the first config file
// found by SearchPaths, then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := explicitPath()
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// explicitPath returns the path given by -config or GLTFTOOL_CONFIG.
// A path named this way must exist; it is never silently skipped.
func explicitPath() (string, bool) {
	if p := ConfigPath(); p != "" {
		return p, true
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p, true
	}
	return "", false
}

// SearchPaths lists the candidate config files in lookup order: the working
// directory (visible, then hidden), then the user config directory.
func SearchPaths() []string {
	return []string{
		FileName,
		"." + FileName,
		filepath.Join(ConfigDir(), FileName),
	}
}

// findConfigFile returns the first existing file from SearchPaths, or "".
func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the gltftool directory inside the user config directory.
// It falls back to the working directory when no user directory is known.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base, _ = filepath.Abs(".")
	}
	return filepath.Join(base, "gltftool")
}

// loadFromFile merges a YAML file into cfg. Unknown keys are rejected so a
// misspelled setting is reported instead of ignored. An empty file is valid.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every setting outside its allowed values.
func (c *Config) Validate() error {
	var errs error
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.MaxSizeMB < 0 {
		errs = multierr.Append(errs, fmt.Errorf("logging.max_size_mb: must not be negative, got %d", c.Logging.MaxSizeMB))
	}
	if c.Logging.MaxBackups < 0 {
		errs = multierr.Append(errs, fmt.Errorf("logging.max_backups: must not be negative, got %d", c.Logging.MaxBackups))
	}
	if _, err := c.Decode.Extensions(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("decode.extension_set: %w", err))
	}
	return errs
}
