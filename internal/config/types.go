// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

const (
	// LogLevelDebug prints launch breadcrumbs (paths, strategy, exit code).
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo prints informational messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn prints warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError prints fatal reports only.
	LogLevelError LogLevel = "error"
)

// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
var ErrInvalidLogLevel = errors.New("invalid log level")

type (
	// LogLevel is the minimum level of the diagnostic stream.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidSettingError reports a setting that was ignored in favor of its default.
	InvalidSettingError struct {
		Key   string
		Value string
		Err   error
	}
)

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface.
func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("ignoring %s=%q: %v", EnvVar(e.Key), e.Value, e.Err)
}

// Unwrap returns the parse failure.
func (e *InvalidSettingError) Unwrap() error { return e.Err }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the LogLevel is not one of the defined levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Level converts the LogLevel to a charmbracelet/log level.
// Unknown values map to warn.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
