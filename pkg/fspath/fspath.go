// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the path-list helpers used to
// compose search variables such as PATH and PYTHONPATH.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pybundle/pybundle/pkg/types"
)

// ListSeparator is the platform path-list separator (':' on POSIX, ';' on Windows).
const ListSeparator = string(filepath.ListSeparator)

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments such as fixed bundle member names.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Parent returns the directory that contains the directory of p.
// For an executable at <root>/bin/app it returns <root>.
func Parent(p types.FilesystemPath) types.FilesystemPath {
	return Dir(Dir(p))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// JoinList joins paths with the platform path-list separator, in order.
func JoinList(paths ...types.FilesystemPath) string {
	strs := make([]string, len(paths))
	for i, p := range paths {
		strs[i] = string(p)
	}
	return strings.Join(strs, ListSeparator)
}

// Prepend puts p in front of an existing path-list value. An unset list
// yields p alone; a set list, even an empty one, is kept verbatim after the
// separator.
func Prepend(p types.FilesystemPath, list string, hadList bool) string {
	if !hadList {
		return string(p)
	}
	return string(p) + ListSeparator + list
}
