// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

// ErrTargetNotFound is the sentinel error wrapped by TargetNotFoundError.
var ErrTargetNotFound = errors.New("target not found")

type (
	// TargetFunc selects the executable a ChildProcessRuntime spawns.
	TargetFunc func(l bundle.Layout) types.FilesystemPath

	// SignalHoldFunc captures signals for the duration of a wait. See
	// platform.HoldSignals.
	SignalHoldFunc func(forward func(os.Signal)) (release func())

	// ChildProcessRuntime launches a companion executable as a child process
	// and mirrors its exit code.
	ChildProcessRuntime struct {
		spawner     platform.Spawner
		stat        platform.StatFunc
		target      TargetFunc
		holdSignals SignalHoldFunc
	}

	// ChildProcessOption configures a ChildProcessRuntime.
	ChildProcessOption func(*ChildProcessRuntime)

	// TargetNotFoundError is returned when the target executable is missing or
	// is not a regular file. No process creation is attempted in that case.
	TargetNotFoundError struct {
		Path types.FilesystemPath
		Err  error
	}
)

// AppTarget selects the companion application executable.
func AppTarget(l bundle.Layout) types.FilesystemPath { return l.AppExecutable }

// InterpreterTarget selects the companion interpreter executable.
func InterpreterTarget(l bundle.Layout) types.FilesystemPath { return l.InterpreterExecutable }

// WithTarget overrides the spawned executable. The default is AppTarget.
func WithTarget(target TargetFunc) ChildProcessOption {
	return func(r *ChildProcessRuntime) { r.target = target }
}

// WithSignalHold overrides how signals are captured while waiting.
func WithSignalHold(hold SignalHoldFunc) ChildProcessOption {
	return func(r *ChildProcessRuntime) { r.holdSignals = hold }
}

// NewChildProcessRuntime creates a child-process strategy. A nil stat uses os.Stat.
func NewChildProcessRuntime(spawner platform.Spawner, stat platform.StatFunc, opts ...ChildProcessOption) *ChildProcessRuntime {
	r := &ChildProcessRuntime{
		spawner:     spawner,
		stat:        stat,
		target:      AppTarget,
		holdSignals: platform.HoldSignals,
	}
	if r.stat == nil {
		r.stat = os.Stat
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Error implements the error interface.
func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Path)
}

// Unwrap returns ErrTargetNotFound for errors.Is() compatibility.
func (e *TargetNotFoundError) Unwrap() error { return ErrTargetNotFound }

// Cause returns the stat failure, if any.
func (e *TargetNotFoundError) Cause() error { return e.Err }

// Name returns the strategy name.
func (r *ChildProcessRuntime) Name() string {
	return "child-process"
}

// Launch builds the command line, spawns the target, waits for it without a
// timeout and returns its exit code. The process handle is released on every
// path once spawned.
func (r *ChildProcessRuntime) Launch(lc *LaunchContext) (result *Result) {
	sm := newStateMachine(childTransitions)
	defer func() { result.States = sm.History() }()

	target := r.target(lc.Layout)
	cmdline := BuildCommandLine(target, lc.Args)
	sm.mustAdvance(StateCommandBuilt)
	lc.debug("command line built", "command", cmdline.String())

	if err := r.checkTarget(target); err != nil {
		sm.mustAdvance(StateFailed)
		lc.Reporter.ReportError(issue.NewErrorContext().
			WithOperation("start application").
			WithIssue(issue.TargetNotFoundId).
			WithSuggestion("Reinstall the application so the bundle is complete").
			Wrap(err).
			BuildError())
		return &Result{ExitCode: types.ExitLauncherFailure, Error: err}
	}

	proc, err := r.spawner.Spawn(platform.SpawnSpec{
		Command: cmdline,
		Stdin:   lc.Stdin,
		Stdout:  lc.Stdout,
		Stderr:  lc.Stderr,
	})
	if err != nil {
		sm.mustAdvance(StateFailed)
		lc.Reporter.ReportError(issue.NewErrorContext().
			WithOperation("start application").
			WithIssue(issue.ProcessCreationId).
			WithSuggestions(
				"Check that the executable is built for this platform",
				"Check that your security software does not block it",
			).
			Wrap(err).
			BuildError())
		return &Result{ExitCode: types.ExitLauncherFailure, Error: err}
	}
	sm.mustAdvance(StateSpawned)
	defer func() {
		if relErr := proc.Release(); relErr != nil {
			lc.debug("releasing process handle failed", "error", relErr)
		}
	}()

	release := r.holdSignals(func(sig os.Signal) {
		lc.debug("forwarding signal", "signal", sig)
		_ = proc.Signal(sig)
	})
	defer release()

	code, waitErr := proc.Wait()
	sm.mustAdvance(StateWaited)
	if waitErr != nil {
		sm.mustAdvance(StateFailed)
		lc.Reporter.ReportError(issue.NewErrorContext().
			WithOperation("wait for application").
			WithPath(target).
			WithSuggestion("Check the system log for the application's exit status").
			Wrap(waitErr).
			BuildError())
		if code == 0 {
			code = int(types.ExitLauncherFailure)
		}
		return &Result{ExitCode: types.ExitCode(code), Error: waitErr}
	}

	sm.mustAdvance(StateSucceeded)
	lc.debug("child exited", "code", code)
	return &Result{ExitCode: types.ExitCode(code)}
}

func (r *ChildProcessRuntime) checkTarget(target types.FilesystemPath) error {
	info, err := r.stat(string(target))
	if err != nil {
		return &TargetNotFoundError{Path: target, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &TargetNotFoundError{Path: target}
	}
	return nil
}
