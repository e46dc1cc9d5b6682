// SPDX-License-Identifier: MPL-2.0

package cpython

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/pkg/types"
)

// maxOptimizationLevel is the highest level with a command-line spelling (-OO).
const maxOptimizationLevel = 2

var (
	// ErrInvalidConfigValue is the sentinel error wrapped by ConfigValueError.
	ErrInvalidConfigValue = errors.New("invalid configuration value")

	// ErrConfigReleased is returned when a configuration is used after Clear.
	ErrConfigReleased = errors.New("configuration already released")

	stringFields = []runtime.ConfigField{
		runtime.FieldHome,
		runtime.FieldPrefix,
		runtime.FieldBasePrefix,
		runtime.FieldRunCommand,
	}

	flagFields = []runtime.ConfigField{
		runtime.FieldModuleSearchPathsSet,
		runtime.FieldInteractive,
		runtime.FieldUserSiteDirectory,
		runtime.FieldUseEnvironment,
		runtime.FieldSafePath,
		runtime.FieldInstallSignalHandlers,
		runtime.FieldParseArgv,
	}
)

type (
	// ConfigValueError is returned when a configuration field cannot hold a value.
	ConfigValueError struct {
		Field  runtime.ConfigField
		Reason string
	}

	// processConfig is the ProcessEngine's configuration object. It starts
	// from the same isolated preset the embedded runtime uses.
	processConfig struct {
		strings     map[runtime.ConfigField]string
		ints        map[runtime.ConfigField]int
		searchPaths []string
		argv        []string
		cleared     bool
	}
)

// Error implements the error interface.
func (e *ConfigValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfigValue for errors.Is() compatibility.
func (e *ConfigValueError) Unwrap() error { return ErrInvalidConfigValue }

func checkString(field runtime.ConfigField, value string) error {
	if !slices.Contains(stringFields, field) {
		return &ConfigValueError{Field: field, Reason: "not a string field"}
	}
	if strings.ContainsRune(value, 0) {
		return &ConfigValueError{Field: field, Reason: "contains a NUL byte"}
	}
	return nil
}

func checkInt(field runtime.ConfigField, value int) error {
	switch {
	case field == runtime.FieldOptimizationLevel:
		if value < 0 || value > maxOptimizationLevel {
			return &ConfigValueError{Field: field, Reason: fmt.Sprintf("level %d outside 0-%d", value, maxOptimizationLevel)}
		}
	case slices.Contains(flagFields, field):
		if value != 0 && value != 1 {
			return &ConfigValueError{Field: field, Reason: fmt.Sprintf("flag value %d is not 0 or 1", value)}
		}
	default:
		return &ConfigValueError{Field: field, Reason: "not an integer field"}
	}
	return nil
}

func checkSearchPath(path string) error {
	var pathErr *types.InvalidFilesystemPathError
	if errors.As(types.FilesystemPath(path).Validate(), &pathErr) {
		return &ConfigValueError{Field: runtime.FieldModuleSearchPaths, Reason: "entry " + pathErr.Reason}
	}
	return nil
}

func checkArgv(argv []string) error {
	for i, a := range argv {
		if strings.ContainsRune(a, 0) {
			return &ConfigValueError{Field: runtime.FieldArgv, Reason: fmt.Sprintf("argument %d contains a NUL byte", i)}
		}
	}
	return nil
}

func newProcessConfig() *processConfig {
	return &processConfig{
		strings: map[runtime.ConfigField]string{},
		ints: map[runtime.ConfigField]int{
			runtime.FieldUseEnvironment:    0,
			runtime.FieldUserSiteDirectory: 0,
			runtime.FieldSafePath:          1,
			runtime.FieldParseArgv:         0,
		},
	}
}

func (c *processConfig) SetString(field runtime.ConfigField, value string) error {
	if c.cleared {
		return ErrConfigReleased
	}
	if err := checkString(field, value); err != nil {
		return err
	}
	c.strings[field] = value
	return nil
}

func (c *processConfig) SetInt(field runtime.ConfigField, value int) error {
	if c.cleared {
		return ErrConfigReleased
	}
	if err := checkInt(field, value); err != nil {
		return err
	}
	c.ints[field] = value
	return nil
}

func (c *processConfig) AppendSearchPath(path string) error {
	if c.cleared {
		return ErrConfigReleased
	}
	if err := checkSearchPath(path); err != nil {
		return err
	}
	if strings.ContainsRune(path, os.PathListSeparator) {
		return &ConfigValueError{Field: runtime.FieldModuleSearchPaths, Reason: "contains the path-list separator"}
	}
	c.searchPaths = append(c.searchPaths, path)
	return nil
}

func (c *processConfig) SetArgv(argv []string) error {
	if c.cleared {
		return ErrConfigReleased
	}
	if err := checkArgv(argv); err != nil {
		return err
	}
	c.argv = slices.Clone(argv)
	return nil
}

func (c *processConfig) Clear() {
	c.strings = nil
	c.ints = nil
	c.searchPaths = nil
	c.argv = nil
	c.cleared = true
}

// commandArgs returns the interpreter switches and arguments that realize c.
func (c *processConfig) commandArgs() []string {
	var args []string
	if c.ints[runtime.FieldUserSiteDirectory] == 0 {
		args = append(args, "-s")
	}
	if c.ints[runtime.FieldSafePath] == 1 {
		args = append(args, "-P")
	}
	switch c.ints[runtime.FieldOptimizationLevel] {
	case 1:
		args = append(args, "-O")
	case 2:
		args = append(args, "-OO")
	}
	if c.ints[runtime.FieldInteractive] == 1 {
		args = append(args, "-i")
	}
	if cmd := c.strings[runtime.FieldRunCommand]; cmd != "" {
		args = append(args, "-c", cmd)
	}
	if len(c.argv) > 1 {
		args = append(args, c.argv[1:]...)
	}
	return args
}

// environ returns base with the explicit home and search path applied. When
// the configuration ignores the environment, every PYTHON* variable is dropped first.
func (c *processConfig) environ(base []string) []string {
	env := base
	if c.ints[runtime.FieldUseEnvironment] == 0 {
		env = FilterPythonEnvVars(base)
	}
	env = slices.Clone(env)
	if home := c.strings[runtime.FieldHome]; home != "" {
		env = append(env, HomeVar+"="+home)
	}
	if len(c.searchPaths) > 0 {
		env = append(env, PathVar+"="+strings.Join(c.searchPaths, string(os.PathListSeparator)))
	}
	return env
}
