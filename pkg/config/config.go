// Package config provides configuration loading for the bcifpack tooling.
//
// Settings resolve in the usual precedence order: explicit flags (applied by
// the caller), environment variables with the BCIFPACK_ prefix, a YAML
// configuration file, and built-in defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// Config holds the tool configuration.
type Config struct {
	// FloatTolerance is the relative error accepted when quantizing
	// floating point columns.
	FloatTolerance float64 `mapstructure:"float_tolerance"`

	// Workers is the number of goroutines compressing columns.
	// 0 uses all CPUs, 1 runs sequentially.
	Workers int `mapstructure:"workers"`

	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Transport is the codec used for post-transport size estimates
	// (none, gzip, deflate, snappy, s2, lz4, zstd).
	Transport string `mapstructure:"transport"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		FloatTolerance: 1e-6,
		Workers:        0,
		LogLevel:       "info",
		Transport:      "gzip",
	}
}

// Load reads the configuration from the given file path (optional, may be
// empty) and the environment, on top of the defaults.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("float_tolerance", defaults.FloatTolerance)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("transport", defaults.Transport)

	v.SetEnvPrefix("BCIFPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, errors.ErrorTypeConfig, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrorTypeConfig, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.FloatTolerance <= 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"float_tolerance must be positive, got %g", c.FloatTolerance)
	}
	if c.Workers < 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"workers must be non-negative, got %d", c.Workers)
	}
	switch c.Transport {
	case "none", "gzip", "deflate", "snappy", "s2", "lz4", "zstd":
	default:
		return errors.Newf(errors.ErrorTypeConfig,
			"unknown transport codec %q", c.Transport)
	}
	return nil
}
