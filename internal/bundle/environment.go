// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"

	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/fspath"
	"github.com/pybundle/pybundle/pkg/types"
)

// Environment variables written by ApplyEnvironment.
const (
	HomeVar       = "PYTHONHOME"
	SearchPathVar = "PYTHONPATH"
	PathVar       = "PATH"
)

// libraryDirTarget names the library registration in EnvironmentWriteError.
const libraryDirTarget = "dynamic-library search directory"

// ErrEnvironmentWrite is the sentinel error wrapped by EnvironmentWriteError.
var ErrEnvironmentWrite = errors.New("environment write refused")

type (
	// EnvironmentWriteError is returned when the platform refuses one of the
	// environment mutations. Target is the variable name or the library
	// directory registration.
	EnvironmentWriteError struct {
		Target string
		Err    error
	}

	// Assignment is one variable write.
	Assignment struct {
		Key   string
		Value string
	}

	// EnvironmentPlan is the full set of mutations for a layout, computed
	// against a snapshot of the current environment.
	EnvironmentPlan struct {
		Assignments []Assignment
		// LibraryDir is registered as a trusted dynamic-library directory.
		LibraryDir types.FilesystemPath
	}

	// LookupFunc reads one variable, reporting whether it is set.
	LookupFunc func(key string) (string, bool)
)

// Error implements the error interface.
func (e *EnvironmentWriteError) Error() string {
	return fmt.Sprintf("cannot set %s: %v", e.Target, e.Err)
}

// Unwrap returns ErrEnvironmentWrite for errors.Is() compatibility.
func (e *EnvironmentWriteError) Unwrap() error { return ErrEnvironmentWrite }

// Cause returns the platform error behind the refusal.
func (e *EnvironmentWriteError) Cause() error { return e.Err }

// PlanEnvironment computes the writes ApplyEnvironment performs:
//   - the runtime home is the binaries directory
//   - the module search path is modules then packages, so application
//     modules shadow third-party ones
//   - PATH gets the binaries directory in front of its previous value
func PlanEnvironment(l Layout, lookup LookupFunc) EnvironmentPlan {
	oldPath, hadPath := lookup(PathVar)
	return EnvironmentPlan{
		Assignments: []Assignment{
			{Key: HomeVar, Value: string(l.BinDir)},
			{Key: SearchPathVar, Value: fspath.JoinList(l.ModuleDir, l.PackagesDir)},
			{Key: PathVar, Value: fspath.Prepend(l.BinDir, oldPath, hadPath)},
		},
		LibraryDir: l.BinDir,
	}
}

// ApplyEnvironment publishes the layout to the process environment so any
// child spawned or runtime initialized afterwards sees the bundle. On failure
// the variables written so far are restored to their previous state.
func ApplyEnvironment(l Layout, env platform.Environment) error {
	plan := PlanEnvironment(l, env.LookupEnv)

	type previous struct {
		key   string
		value string
		set   bool
	}
	written := make([]previous, 0, len(plan.Assignments))
	rollback := func() {
		for i := len(written) - 1; i >= 0; i-- {
			p := written[i]
			if p.set {
				_ = env.Setenv(p.key, p.value)
			} else {
				_ = env.Unsetenv(p.key)
			}
		}
	}

	for _, a := range plan.Assignments {
		old, had := env.LookupEnv(a.Key)
		if err := env.Setenv(a.Key, a.Value); err != nil {
			rollback()
			return &EnvironmentWriteError{Target: a.Key, Err: err}
		}
		written = append(written, previous{key: a.Key, value: old, set: had})
	}

	if err := env.RegisterLibraryDir(plan.LibraryDir); err != nil {
		rollback()
		return &EnvironmentWriteError{Target: libraryDirTarget, Err: err}
	}
	return nil
}
