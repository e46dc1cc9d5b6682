// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pybundle/pybundle/pkg/types"
)

type selfLocator struct{}

// Executable uses the runtime's self-path query (_NSGetExecutablePath on
// darwin, sysctl on the BSDs) and resolves symlinks so a linked launcher still
// finds the bundle it lives in.
func (selfLocator) Executable() (types.FilesystemPath, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("query executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable path %s: %w", exe, err)
	}
	return types.FilesystemPath(resolved), nil
}
