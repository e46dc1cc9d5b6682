// SPDX-License-Identifier: MPL-2.0

//go:build linux

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/pybundle/pybundle/pkg/types"
)

const procSelfExe = "/proc/self/exe"

type selfLocator struct{}

// Executable resolves the procfs self link. A result that fills the whole
// buffer is treated as truncated, matching readlink(2) semantics.
func (selfLocator) Executable() (types.FilesystemPath, error) {
	return readSelfLink(procSelfExe, unix.PathMax)
}

func readSelfLink(link string, size int) (types.FilesystemPath, error) {
	buf := make([]byte, size)
	n, err := unix.Readlink(link, buf)
	if err != nil {
		return "", fmt.Errorf("readlink %s: %w", link, err)
	}
	if n >= len(buf) {
		return "", fmt.Errorf("readlink %s: %w", link, ErrTruncatedPath)
	}
	if n == 0 {
		return "", fmt.Errorf("readlink %s: empty result", link)
	}
	return types.FilesystemPath(buf[:n]), nil
}
