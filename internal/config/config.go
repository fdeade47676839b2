// Package config loads shimgen's settings: where shims are created,
// which shim executable is copied, and how the tool logs.
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config is the root of shimgen's configuration.
type Config struct {
	// ShimDir is the directory shims are created in. Empty means the
	// per-user default (see DefaultShimDir).
	ShimDir string `mapstructure:"shim_dir" yaml:"shim_dir"`

	// ShimSource is the shim executable copied for every generated
	// shim. Empty means the shim binary next to shimgen itself.
	ShimSource string `mapstructure:"shim_source" yaml:"shim_source"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig mirrors the logger configuration in file form.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

var (
	globalConfig *Config
	mu           sync.RWMutex
)

// Load reads configuration with the precedence ENV > file > defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	SetDefaults()

	viper.SetEnvPrefix("SHIMGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		expandedPath, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}

		viper.SetConfigFile(expandedPath)
		if err := viper.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) && !os.IsNotExist(err) {
				if _, ok := err.(viper.ConfigParseError); ok {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// GetConfig returns the configuration from the last Load.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

// Reset clears all loaded state. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viper.Reset()
}
