// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is returned when the launched application completed normally.
	ExitSuccess ExitCode = 0
	// ExitLauncherFailure is returned for every failure the launcher itself
	// detects: unresolvable self path, missing bundle member, missing target
	// executable, or refused process creation.
	ExitLauncherFailure ExitCode = 1
	// signalExitBase is added to a signal number to form the conventional
	// shell exit status of a process killed by that signal.
	signalExitBase ExitCode = 128
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the status the launcher hands back to its parent.
	// Codes produced by the launched application are passed through verbatim,
	// so values above 255 are legal on Windows. Validate reports whether the
	// value also fits the POSIX range.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// portable range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// SignalExitCode returns the shell-style status for a process terminated by signal sig.
func SignalExitCode(sig int) ExitCode { return signalExitBase + ExitCode(sig) }

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the portable range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsSignal reports whether the code follows the 128+N signal convention.
func (c ExitCode) IsSignal() bool { return c > signalExitBase && c < signalExitBase+65 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
