// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a host path: bundle members, the launcher's own
	// location and spawn targets all travel as this type.
	FilesystemPath string

	// InvalidFilesystemPathError describes why a path cannot be handed to
	// the operating system or the embedded runtime.
	InvalidFilesystemPathError struct {
		Value  FilesystemPath
		Reason string
	}
)

// String returns the path unchanged.
func (p FilesystemPath) String() string { return string(p) }

// Validate rejects blank paths and paths with a NUL byte. Both the operating
// system and the runtime's C strings stop at the first NUL, so such a path
// would silently name a different file.
func (p FilesystemPath) Validate() error {
	switch {
	case strings.TrimSpace(string(p)) == "":
		return &InvalidFilesystemPathError{Value: p, Reason: "must be non-empty"}
	case strings.IndexByte(string(p), 0) >= 0:
		return &InvalidFilesystemPathError{Value: p, Reason: "must not contain NUL"}
	default:
		return nil
	}
}

// Error implements the error interface.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
