// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

// Configuration fields understood by every Interpreter. The names follow the
// embedded runtime's own configuration structure.
const (
	FieldHome                  ConfigField = "home"
	FieldPrefix                ConfigField = "prefix"
	FieldBasePrefix            ConfigField = "base_prefix"
	FieldRunCommand            ConfigField = "run_command"
	FieldModuleSearchPathsSet  ConfigField = "module_search_paths_set"
	FieldModuleSearchPaths     ConfigField = "module_search_paths"
	FieldInteractive           ConfigField = "interactive"
	FieldUserSiteDirectory     ConfigField = "user_site_directory"
	FieldUseEnvironment        ConfigField = "use_environment"
	FieldSafePath              ConfigField = "safe_path"
	FieldInstallSignalHandlers ConfigField = "install_signal_handlers"
	FieldOptimizationLevel     ConfigField = "optimization_level"
	FieldParseArgv             ConfigField = "parse_argv"
	FieldArgv                  ConfigField = "argv"
)

var (
	// ErrRuntimeConfiguration is the sentinel error wrapped by RuntimeConfigurationError.
	ErrRuntimeConfiguration = errors.New("runtime configuration failed")

	// ErrRuntimeInitialization is the sentinel error wrapped by RuntimeInitializationError.
	ErrRuntimeInitialization = errors.New("runtime initialization failed")
)

type (
	// ConfigField names one field of the runtime configuration.
	ConfigField string

	// ConfigWriter is the runtime-owned configuration object being filled in.
	// Every setter either stores the value or fails without side effects.
	ConfigWriter interface {
		SetString(field ConfigField, value string) error
		SetInt(field ConfigField, value int) error
		AppendSearchPath(path string) error
		SetArgv(argv []string) error
		// Clear releases the configuration. The writer must not be used afterwards.
		Clear()
	}

	// Interpreter is the embedded runtime, treated as a black box.
	Interpreter interface {
		// NewConfig returns a configuration preset for isolated mode.
		NewConfig() ConfigWriter
		// Initialize starts the runtime from a completed configuration.
		Initialize(cfg ConfigWriter) error
		// RunMain runs the runtime's main entry point until it completes.
		RunMain() int
		// ExitStatusException is the runtime's fatal-exit facility. Production
		// implementations terminate the process and never return.
		ExitStatusException(err error)
	}

	// RuntimeConfigurationError is returned when a single configuration field
	// could not be set.
	RuntimeConfigurationError struct {
		Field ConfigField
		Err   error
	}

	// RuntimeInitializationError is returned when the runtime refuses a
	// completed configuration.
	RuntimeInitializationError struct {
		Err error
	}
)

// Error implements the error interface.
func (e *RuntimeConfigurationError) Error() string {
	return fmt.Sprintf("cannot set runtime configuration field %s: %v", e.Field, e.Err)
}

// Unwrap returns ErrRuntimeConfiguration for errors.Is() compatibility.
func (e *RuntimeConfigurationError) Unwrap() error { return ErrRuntimeConfiguration }

// Cause returns the interpreter's error.
func (e *RuntimeConfigurationError) Cause() error { return e.Err }

// Error implements the error interface.
func (e *RuntimeInitializationError) Error() string {
	return fmt.Sprintf("runtime initialization failed: %v", e.Err)
}

// Unwrap returns ErrRuntimeInitialization for errors.Is() compatibility.
func (e *RuntimeInitializationError) Unwrap() error { return ErrRuntimeInitialization }

// Cause returns the interpreter's error.
func (e *RuntimeInitializationError) Cause() error { return e.Err }
