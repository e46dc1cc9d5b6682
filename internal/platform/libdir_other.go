// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package platform

import "github.com/pybundle/pybundle/pkg/types"

// registerLibraryDir is a no-op: the dynamic loader here follows rpath and
// LD_LIBRARY_PATH rather than per-process registered directories.
func registerLibraryDir(types.FilesystemPath) error { return nil }
