// SPDX-License-Identifier: MPL-2.0

package cpython

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/pkg/types"
)

var (
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("interpreter already initialized")

	// ErrNotInitialized is returned when RunMain precedes Initialize.
	ErrNotInitialized = errors.New("interpreter not initialized")
)

// ProcessEngine runs the bundle's interpreter executable as a child process.
type ProcessEngine struct {
	// Executable is the interpreter to run.
	Executable types.FilesystemPath
	// Environ returns the base environment. Defaults to os.Environ.
	Environ func() []string
	// Stat checks Executable before initialization. Defaults to os.Stat.
	Stat platform.StatFunc
	// Start creates the process. Defaults to platform.StartCommand.
	Start func(cmd *exec.Cmd) (platform.Process, error)
	// HoldSignals captures signals while the interpreter runs. Defaults to
	// platform.HoldSignals.
	HoldSignals runtime.SignalHoldFunc
	// Exit terminates the process from ExitStatusException. Defaults to os.Exit.
	Exit func(code int)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	cmd *exec.Cmd
}

// NewProcessEngine returns an engine for the interpreter of lc's bundle,
// wired to lc's streams.
func NewProcessEngine(lc *runtime.LaunchContext) *ProcessEngine {
	return &ProcessEngine{
		Executable: lc.Layout.InterpreterExecutable,
		Stdin:      lc.Stdin,
		Stdout:     lc.Stdout,
		Stderr:     lc.Stderr,
	}
}

// NewConfig implements runtime.Interpreter.
func (e *ProcessEngine) NewConfig() runtime.ConfigWriter {
	return newProcessConfig()
}

// Initialize prepares the interpreter command from cfg. The configuration is
// copied, so it may be cleared as soon as Initialize returns.
func (e *ProcessEngine) Initialize(cfg runtime.ConfigWriter) error {
	if e.cmd != nil {
		return ErrAlreadyInitialized
	}
	c, ok := cfg.(*processConfig)
	if !ok {
		return fmt.Errorf("configuration %T was not created by this engine", cfg)
	}
	if c.cleared {
		return ErrConfigReleased
	}
	if c.strings[runtime.FieldHome] == "" {
		return &ConfigValueError{Field: runtime.FieldHome, Reason: "not set"}
	}

	stat := e.Stat
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(string(e.Executable))
	if err != nil {
		return fmt.Errorf("interpreter %s: %w", e.Executable, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("interpreter %s is not a regular file", e.Executable)
	}

	environ := e.Environ
	if environ == nil {
		environ = os.Environ
	}
	path := string(e.Executable)
	e.cmd = &exec.Cmd{
		Path:   path,
		Args:   append([]string{path}, c.commandArgs()...),
		Env:    c.environ(environ()),
		Stdin:  e.Stdin,
		Stdout: e.Stdout,
		Stderr: e.Stderr,
	}
	return nil
}

// RunMain runs the interpreter and returns its exit status. The interpreter
// handles interrupts itself; termination signals sent to the launcher are
// forwarded to it.
func (e *ProcessEngine) RunMain() int {
	if e.cmd == nil {
		e.fatalf("%v", ErrNotInitialized)
		return int(types.ExitLauncherFailure)
	}

	start := e.Start
	if start == nil {
		start = platform.StartCommand
	}
	proc, err := start(e.cmd)
	if err != nil {
		e.fatalf("%v", err)
		return int(types.ExitLauncherFailure)
	}
	defer proc.Release()

	hold := e.HoldSignals
	if hold == nil {
		hold = platform.HoldSignals
	}
	release := hold(func(sig os.Signal) { _ = proc.Signal(sig) })
	defer release()

	code, err := proc.Wait()
	if err != nil {
		e.fatalf("%v", err)
	}
	return code
}

// ExitStatusException prints err the way the interpreter reports fatal
// errors and exits with status 1.
func (e *ProcessEngine) ExitStatusException(err error) {
	e.fatalf("%v", err)
	exit := e.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(int(types.ExitLauncherFailure))
}

// Args returns the prepared argument vector, or nil before Initialize.
func (e *ProcessEngine) Args() []string {
	if e.cmd == nil {
		return nil
	}
	return e.cmd.Args
}

// Env returns the prepared environment, or nil before Initialize.
func (e *ProcessEngine) Env() []string {
	if e.cmd == nil {
		return nil
	}
	return e.cmd.Env
}

func (e *ProcessEngine) fatalf(format string, args ...any) {
	w := e.Stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Fatal Python error: "+format+"\n", args...)
}
