// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

// ErrMissingBundleMember is the sentinel error wrapped by MissingBundleMemberError.
var ErrMissingBundleMember = errors.New("required bundle member missing")

type (
	// MissingBundleMemberError names the first required member that is absent
	// or has the wrong type.
	MissingBundleMemberError struct {
		Member string
		Kind   MemberKind
		Path   types.FilesystemPath
		// Err is the stat failure, or nil when the entry exists with the wrong type.
		Err error
	}

	// Checker validates a Layout against a filesystem.
	Checker struct {
		// Stat reads member metadata. When nil, os.Stat is used.
		Stat platform.StatFunc
	}

	// ValidationIssue is a single problem found by a full inspection.
	ValidationIssue struct {
		Member   string
		Path     types.FilesystemPath
		Message  string
		Required bool
	}

	// ValidationResult is the outcome of Checker.Inspect: every member is
	// checked, optional ones included, and all problems are collected.
	ValidationResult struct {
		Valid  bool
		Layout Layout
		Issues []ValidationIssue
	}
)

// Error implements the error interface. The message always carries the literal path.
func (e *MissingBundleMemberError) Error() string {
	return fmt.Sprintf("required %s missing: %s", e.Kind, e.Path)
}

// Unwrap returns ErrMissingBundleMember for errors.Is() compatibility.
func (e *MissingBundleMemberError) Unwrap() error { return ErrMissingBundleMember }

// Error implements the error interface for ValidationIssue.
func (v ValidationIssue) Error() string {
	return fmt.Sprintf("[%s] %s: %s", v.Member, v.Path, v.Message)
}

// AddIssue records a problem. Only required members invalidate the result.
func (r *ValidationResult) AddIssue(m Member, message string) {
	r.Issues = append(r.Issues, ValidationIssue{
		Member:   m.Name,
		Path:     m.Path,
		Message:  message,
		Required: m.Required,
	})
	if m.Required {
		r.Valid = false
	}
}

// Validate checks the required members in catalog order and stops at the
// first one that is absent or of the wrong type. It has no side effects.
func (c Checker) Validate(l Layout) error {
	for _, m := range l.Members() {
		if !m.Required {
			continue
		}
		if err := c.checkMember(m); err != nil {
			return err
		}
	}
	return nil
}

// Inspect checks every member without stopping and reports all problems.
func (c Checker) Inspect(l Layout) *ValidationResult {
	result := &ValidationResult{Valid: true, Layout: l}
	for _, m := range l.Members() {
		if err := c.checkMember(m); err != nil {
			var missing *MissingBundleMemberError
			if errors.As(err, &missing) && missing.Err == nil {
				result.AddIssue(m, "exists but is not a "+m.Kind.String())
			} else {
				result.AddIssue(m, m.Kind.String()+" not found")
			}
		}
	}
	return result
}

func (c Checker) checkMember(m Member) error {
	info, err := c.stat(string(m.Path))
	if err != nil {
		return &MissingBundleMemberError{Member: m.Name, Kind: m.Kind, Path: m.Path, Err: err}
	}
	if !kindMatches(m.Kind, info) {
		return &MissingBundleMemberError{Member: m.Name, Kind: m.Kind, Path: m.Path}
	}
	return nil
}

func (c Checker) stat(name string) (fs.FileInfo, error) {
	if c.Stat != nil {
		return c.Stat(name)
	}
	return os.Stat(name)
}

func kindMatches(kind MemberKind, info fs.FileInfo) bool {
	switch kind {
	case KindDirectory:
		return info.IsDir()
	case KindFile:
		return info.Mode().IsRegular()
	default:
		return false
	}
}
