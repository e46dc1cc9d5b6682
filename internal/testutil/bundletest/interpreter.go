// SPDX-License-Identifier: MPL-2.0

package bundletest

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pybundle/pybundle/internal/runtime"
)

type (
	// Interpreter is a runtime.Interpreter that records what it is asked to do.
	// Its ExitStatusException returns instead of terminating the process.
	Interpreter struct {
		mu sync.Mutex
		// FailField makes the setter of that field return FailErr.
		FailField runtime.ConfigField
		FailErr   error
		InitErr   error
		ExitCode  int

		Configs     []*Config
		Initialized *Config
		Fatal       []error
		Runs        int
	}

	// Config records every value written through runtime.ConfigWriter.
	Config struct {
		owner       *Interpreter
		Order       []runtime.ConfigField
		Strings     map[runtime.ConfigField]string
		Ints        map[runtime.ConfigField]int
		SearchPaths []string
		Argv        []string
		Cleared     bool
	}
)

var errCleared = errors.New("configuration used after Clear")

// NewConfig implements runtime.Interpreter.
func (i *Interpreter) NewConfig() runtime.ConfigWriter {
	i.mu.Lock()
	defer i.mu.Unlock()
	c := &Config{
		owner:   i,
		Strings: map[runtime.ConfigField]string{},
		Ints:    map[runtime.ConfigField]int{},
	}
	i.Configs = append(i.Configs, c)
	return c
}

// Initialize implements runtime.Interpreter.
func (i *Interpreter) Initialize(cfg runtime.ConfigWriter) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	c, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("unexpected config type %T", cfg)
	}
	if c.Cleared {
		return errCleared
	}
	if i.InitErr != nil {
		return i.InitErr
	}
	i.Initialized = c
	return nil
}

// RunMain implements runtime.Interpreter.
func (i *Interpreter) RunMain() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Runs++
	return i.ExitCode
}

// ExitStatusException implements runtime.Interpreter.
func (i *Interpreter) ExitStatusException(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Fatal = append(i.Fatal, err)
}

// Factory returns a runtime.InterpreterFactory handing out i.
func (i *Interpreter) Factory() runtime.InterpreterFactory {
	return func(*runtime.LaunchContext) runtime.Interpreter { return i }
}

func (c *Config) check(field runtime.ConfigField) error {
	if c.Cleared {
		return errCleared
	}
	if c.owner.FailField == field {
		return c.owner.FailErr
	}
	c.Order = append(c.Order, field)
	return nil
}

func (c *Config) SetString(field runtime.ConfigField, value string) error {
	if err := c.check(field); err != nil {
		return err
	}
	c.Strings[field] = value
	return nil
}

func (c *Config) SetInt(field runtime.ConfigField, value int) error {
	if err := c.check(field); err != nil {
		return err
	}
	c.Ints[field] = value
	return nil
}

func (c *Config) AppendSearchPath(path string) error {
	if err := c.check(runtime.FieldModuleSearchPaths); err != nil {
		return err
	}
	c.SearchPaths = append(c.SearchPaths, path)
	return nil
}

func (c *Config) SetArgv(argv []string) error {
	if err := c.check(runtime.FieldArgv); err != nil {
		return err
	}
	c.Argv = slices.Clone(argv)
	return nil
}

func (c *Config) Clear() { c.Cleared = true }
