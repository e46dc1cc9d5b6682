// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/pybundle/pybundle/pkg/types"
)

type selfLocator struct{}

// Executable queries the module file name of the current process image.
// GetModuleFileName signals truncation by returning the full buffer length.
func (selfLocator) Executable() (types.FilesystemPath, error) {
	buf := make([]uint16, windows.MAX_LONG_PATH)
	n, err := windows.GetModuleFileName(0, &buf[0], uint32(len(buf)))
	if err != nil {
		if errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
			return "", fmt.Errorf("GetModuleFileName: %w", ErrTruncatedPath)
		}
		return "", fmt.Errorf("GetModuleFileName: %w", err)
	}
	if n == 0 {
		return "", errors.New("GetModuleFileName: empty result")
	}
	if int(n) >= len(buf) {
		return "", fmt.Errorf("GetModuleFileName: %w", ErrTruncatedPath)
	}
	return types.FilesystemPath(windows.UTF16ToString(buf[:n])), nil
}
