// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/pkg/types"
)

// Launch modes, one per launcher executable.
const (
	// ModeLaunch spawns the companion application as a child process.
	ModeLaunch Mode = "launch"
	// ModeConsole runs the embedded runtime interactively.
	ModeConsole Mode = "console"
	// ModeWindowed runs the embedded runtime's fixed entry point.
	ModeWindowed Mode = "windowed"
)

type (
	// Mode selects a launch strategy.
	Mode string

	// Reporter is the fatal reporting sink seen by the strategies.
	Reporter interface {
		Report(message string)
		ReportError(err error)
	}

	// LaunchContext carries everything one launch attempt needs.
	LaunchContext struct {
		// Layout is the validated bundle.
		Layout bundle.Layout
		// Naming produced Layout; it also supplies the entry command.
		Naming bundle.Naming
		// Args is the launcher's own argument vector, program name included.
		Args []string
		// Stdin is handed to the child or runtime.
		Stdin io.Reader
		// Stdout is handed to the child or runtime.
		Stdout io.Writer
		// Stderr is handed to the child or runtime.
		Stderr io.Writer
		// Reporter receives every fatal condition.
		Reporter Reporter
		// Logger receives debug breadcrumbs. May be nil.
		Logger *log.Logger
	}

	// Result is the outcome of one launch.
	Result struct {
		// ExitCode is the code the launcher exits with.
		ExitCode types.ExitCode
		// Error is set when the launch failed before the target ran or waiting
		// on the child failed.
		Error error
		// States lists every state the strategy visited.
		States []State
	}

	// Runtime is a launch strategy.
	Runtime interface {
		// Name returns the strategy name.
		Name() string
		// Launch hands control to the bundled application and blocks until it
		// finishes. Failures are reported through lc.Reporter before returning.
		Launch(lc *LaunchContext) *Result
	}

	// Registry maps launch modes to strategies.
	Registry struct {
		runtimes map[Mode]Runtime
	}
)

// NewLaunchContext returns a context wired to the process's standard streams.
func NewLaunchContext(layout bundle.Layout, naming bundle.Naming, args []string, reporter Reporter) *LaunchContext {
	return &LaunchContext{
		Layout:   layout,
		Naming:   naming,
		Args:     args,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Reporter: reporter,
	}
}

func (lc *LaunchContext) debug(msg string, keyvals ...any) {
	if lc.Logger != nil {
		lc.Logger.Debug(msg, keyvals...)
	}
}

// Success returns true if the target ran and exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// FinalState returns the last state of the launch.
func (r *Result) FinalState() State {
	if len(r.States) == 0 {
		return StateIdle
	}
	return r.States[len(r.States)-1]
}

// Validate returns an error if m is not a known launch mode.
func (m Mode) Validate() error {
	switch m {
	case ModeLaunch, ModeConsole, ModeWindowed:
		return nil
	default:
		return fmt.Errorf("unknown launch mode %q (expected one of %v)", string(m), Modes())
	}
}

// Modes returns every launch mode.
func Modes() []Mode {
	return []Mode{ModeLaunch, ModeConsole, ModeWindowed}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runtimes: make(map[Mode]Runtime)}
}

// Register binds a strategy to a mode, replacing any previous binding.
func (r *Registry) Register(mode Mode, rt Runtime) {
	r.runtimes[mode] = rt
}

// Get returns the strategy bound to mode.
func (r *Registry) Get(mode Mode) (Runtime, error) {
	rt, ok := r.runtimes[mode]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", mode)
	}
	return rt, nil
}

// Registered returns the bound modes in a stable order.
func (r *Registry) Registered() []Mode {
	modes := make([]Mode, 0, len(r.runtimes))
	for m := range r.runtimes {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return modes
}
