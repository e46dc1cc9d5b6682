// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/pybundle/pybundle/pkg/types"
)

var (
	// ErrTruncatedPath is returned when the operating system filled the whole
	// self-path buffer, so the result cannot be trusted to be complete.
	ErrTruncatedPath = errors.New("executable path truncated")

	// ErrProcessCreation is the sentinel error wrapped by ProcessCreationError.
	ErrProcessCreation = errors.New("process creation failed")
)

type (
	// SelfLocator discovers the absolute path of the running executable.
	SelfLocator interface {
		Executable() (types.FilesystemPath, error)
	}

	// Environment is the process-wide state the environment loader mutates.
	Environment interface {
		LookupEnv(key string) (string, bool)
		Setenv(key, value string) error
		Unsetenv(key string) error
		// RegisterLibraryDir marks dir as a trusted dynamic-library search
		// directory. It is a no-op on platforms without library search isolation.
		RegisterLibraryDir(dir types.FilesystemPath) error
	}

	// Spawner creates the companion process.
	Spawner interface {
		Spawn(spec SpawnSpec) (Process, error)
	}

	// Process is a spawned child owned by the caller until Release.
	Process interface {
		// Wait blocks until the process terminates and returns its exit status.
		Wait() (int, error)
		// Signal delivers sig to the process.
		Signal(sig os.Signal) error
		// Release frees every operating system handle held for the process.
		// It is safe to call after Wait and must be called exactly once.
		Release() error
	}

	// Alerter raises the blocking visual alert of the fatal reporting sink.
	Alerter interface {
		Alert(title, message string)
	}

	// StatFunc reports file metadata without following the caller into the
	// real filesystem, so validation can run against a synthetic tree.
	StatFunc func(name string) (fs.FileInfo, error)

	// Services bundles every capability the launch flow consumes.
	Services struct {
		Self    SelfLocator
		Env     Environment
		Spawner Spawner
		Alerter Alerter
		Stat    StatFunc
		GOOS    string
	}

	// CommandLine is the target executable followed by the forwarded arguments.
	// Arguments are kept as received: no quoting or escaping is added.
	CommandLine struct {
		Executable types.FilesystemPath
		Arguments  []string
	}

	// SpawnSpec describes one child process creation request.
	SpawnSpec struct {
		Command CommandLine
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ProcessCreationError is returned when the operating system refuses to
	// create the child process. Code carries the platform error number
	// (errno or GetLastError) when one is available, 0 otherwise.
	ProcessCreationError struct {
		Path types.FilesystemPath
		Code uint32
		Err  error
	}
)

// String returns the executable and arguments joined by single spaces.
func (c CommandLine) String() string {
	if len(c.Arguments) == 0 {
		return string(c.Executable)
	}
	return string(c.Executable) + " " + c.ArgumentString()
}

// ArgumentString returns only the forwarded arguments, space-joined.
func (c CommandLine) ArgumentString() string {
	return strings.Join(c.Arguments, " ")
}

// Error implements the error interface.
func (e *ProcessCreationError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("CreateProcess failed (%d): %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("process creation failed: %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrProcessCreation for errors.Is() compatibility.
func (e *ProcessCreationError) Unwrap() error { return ErrProcessCreation }

// Cause returns the underlying operating system error.
func (e *ProcessCreationError) Cause() error { return e.Err }

// osEnvironment mutates the real process environment.
type osEnvironment struct{}

func (osEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (osEnvironment) Setenv(key, value string) error { return os.Setenv(key, value) }

func (osEnvironment) Unsetenv(key string) error { return os.Unsetenv(key) }

func (osEnvironment) RegisterLibraryDir(dir types.FilesystemPath) error {
	return registerLibraryDir(dir)
}

// Native returns the capability set for the running operating system.
func Native() *Services {
	return &Services{
		Self:    selfLocator{},
		Env:     osEnvironment{},
		Spawner: nativeSpawner{},
		Alerter: nativeAlerter{},
		Stat:    os.Stat,
		GOOS:    runtime.GOOS,
	}
}
