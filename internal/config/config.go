// Package config handles gltftool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Extension set names accepted in DecodeConfig.ExtensionSet.
const (
	ExtensionsDefault = "default"
	ExtensionsNone    = "none"
)

// Config holds all gltftool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Decode  DecodeConfig  `yaml:"decode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// OutputConfig controls where commands write their files.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Overwrite bool   `yaml:"overwrite"`
}

// DecodeConfig controls how documents and accessors are decoded.
type DecodeConfig struct {
	ExtensionSet string `yaml:"extension_set"` // "default" or "none"
	WarnOnClamp  bool   `yaml:"warn_on_clamp"`
}

// Extensions returns the extension set named by ExtensionSet.
// An empty name selects the default set.
func (d DecodeConfig) Extensions() (gltf.ExtensionSet, error) {
	switch d.ExtensionSet {
	case "", ExtensionsDefault:
		return gltf.DefaultExtensions, nil
	case ExtensionsNone:
		return gltf.NoExtensions, nil
	default:
		return nil, fmt.Errorf("unknown extension set %q", d.ExtensionSet)
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Output: OutputConfig{
			Dir:       ".",
			Overwrite: false,
		},
		Decode: DecodeConfig{
			ExtensionSet: ExtensionsDefault,
			WarnOnClamp:  true,
		},
	}
}
