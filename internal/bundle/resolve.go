// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"

	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/fspath"
	"github.com/pybundle/pybundle/pkg/types"
)

// ErrPathResolution is the sentinel error wrapped by PathResolutionError.
var ErrPathResolution = errors.New("cannot determine launcher location")

// PathResolutionError is returned when the running executable's path is
// unavailable, truncated or unusable. Nothing may be launched after it.
type PathResolutionError struct {
	Err error
}

// Error implements the error interface.
func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPathResolution, e.Err)
}

// Unwrap returns ErrPathResolution for errors.Is() compatibility.
func (e *PathResolutionError) Unwrap() error { return ErrPathResolution }

// Cause returns the platform error behind the failure.
func (e *PathResolutionError) Cause() error { return e.Err }

// Resolve returns the cleaned absolute path of the running executable.
// Relative results are rejected instead of being resolved against the working
// directory, which says nothing about where the bundle lives.
func Resolve(self platform.SelfLocator) (types.FilesystemPath, error) {
	p, err := self.Executable()
	if err != nil {
		return "", &PathResolutionError{Err: err}
	}
	if err := p.Validate(); err != nil {
		return "", &PathResolutionError{Err: err}
	}
	if !fspath.IsAbs(p) {
		return "", &PathResolutionError{Err: fmt.Errorf("executable path %q is not absolute", p)}
	}
	return fspath.Clean(p), nil
}
