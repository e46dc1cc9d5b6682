// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every launcher setting in the environment.
const EnvPrefix = "PYBUNDLE"

// Setting keys.
const (
	KeyLogLevel = "log_level"
	KeyNoAlert  = "no_alert"
	KeyVerbose  = "verbose"
)

// Config holds the launcher settings.
type Config struct {
	LogLevel LogLevel `mapstructure:"log_level"`
	NoAlert  bool     `mapstructure:"no_alert"`
	Verbose  bool     `mapstructure:"verbose"`
}

// DefaultConfig returns the settings used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: LogLevelWarn,
		NoAlert:  false,
		Verbose:  false,
	}
}

// EnvVar returns the environment variable name for a setting key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// NewViper returns a Viper instance bound to the PYBUNDLE_* variables with
// defaults applied. Callers may bind command-line flags over it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault(KeyLogLevel, string(defaults.LogLevel))
	v.SetDefault(KeyNoAlert, defaults.NoAlert)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	return v
}

// Load reads the settings from the process environment. Invalid values never
// block a launch: each one falls back to its default and is returned in the
// joined error so the caller can log it.
func Load() (*Config, error) {
	return FromViper(NewViper())
}

// FromViper decodes settings from v, applying the same fallback rules as Load.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	var errs []error

	level := LogLevel(strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))))
	if err := level.Validate(); err != nil {
		errs = append(errs, &InvalidSettingError{Key: KeyLogLevel, Value: string(level), Err: err})
	} else {
		cfg.LogLevel = level
	}

	for _, b := range []struct {
		key string
		dst *bool
	}{
		{KeyNoAlert, &cfg.NoAlert},
		{KeyVerbose, &cfg.Verbose},
	} {
		raw := strings.TrimSpace(v.GetString(b.key))
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, &InvalidSettingError{Key: b.key, Value: raw, Err: err})
			continue
		}
		*b.dst = parsed
	}

	return cfg, errors.Join(errs...)
}
