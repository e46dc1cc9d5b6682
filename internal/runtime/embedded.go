// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/pkg/types"
)

type (
	// InterpreterFactory creates the interpreter for one launch.
	InterpreterFactory func(lc *LaunchContext) Interpreter

	// EmbeddedRuntime configures, initializes and runs an Interpreter.
	EmbeddedRuntime struct {
		newInterpreter InterpreterFactory
		variant        Variant
	}
)

// NewEmbeddedRuntime creates an embedded-runtime strategy for variant.
func NewEmbeddedRuntime(factory InterpreterFactory, variant Variant) *EmbeddedRuntime {
	return &EmbeddedRuntime{newInterpreter: factory, variant: variant}
}

// Name returns the strategy name.
func (r *EmbeddedRuntime) Name() string {
	return "embedded-" + r.variant.String()
}

// Variant returns the variant this strategy drives.
func (r *EmbeddedRuntime) Variant() Variant {
	return r.variant
}

// Launch runs the interpreter until its main entry point returns.
//
// A field the interpreter refuses, or a refused initialization, goes straight
// to the interpreter's fatal-exit facility: a half-built configuration is
// never used. A non-zero status from a started runtime is reported as an
// advisory and returned unchanged.
func (r *EmbeddedRuntime) Launch(lc *LaunchContext) (result *Result) {
	sm := newStateMachine(embeddedTransitions)
	defer func() { result.States = sm.History() }()

	interp := r.newInterpreter(lc)
	cfg := NewRuntimeConfiguration(lc.Layout, lc.Naming, lc.Args, r.variant)
	w := interp.NewConfig()
	if err := cfg.Apply(w); err != nil {
		sm.mustAdvance(StateFailed)
		interp.ExitStatusException(err)
		return &Result{ExitCode: types.ExitLauncherFailure, Error: err}
	}
	sm.mustAdvance(StateConfigured)
	lc.debug("runtime configured",
		"variant", r.variant,
		"home", cfg.Home,
		"search_paths", cfg.SearchPaths,
		"optimization", cfg.OptimizationLevel)

	if err := interp.Initialize(w); err != nil {
		sm.mustAdvance(StateFailed)
		initErr := &RuntimeInitializationError{Err: err}
		interp.ExitStatusException(initErr)
		return &Result{ExitCode: types.ExitLauncherFailure, Error: initErr}
	}
	w.Clear()
	sm.mustAdvance(StateInitialized)

	sm.mustAdvance(StateRunning)
	code := interp.RunMain()
	sm.mustAdvance(StateTerminated)
	lc.debug("runtime returned", "code", code)

	if code != 0 {
		lc.Reporter.Report(issue.RuntimeFailureMessage)
	}
	return &Result{ExitCode: types.ExitCode(code)}
}
