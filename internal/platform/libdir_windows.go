// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/pybundle/pybundle/pkg/types"
)

var (
	setDllDirectory = windows.SetDllDirectory
	addDllDirectory = windows.AddDllDirectory
)

// registerLibraryDir applies both DLL search registrations. SetDllDirectory
// covers implicit load-time resolution; AddDllDirectory covers LoadLibraryEx
// calls made with LOAD_LIBRARY_SEARCH_USER_DIRS, as extension modules do.
// Either both registrations hold or neither does.
func registerLibraryDir(dir types.FilesystemPath) error {
	if err := setDllDirectory(string(dir)); err != nil {
		return fmt.Errorf("SetDllDirectory %s: %w", dir, err)
	}
	wide, err := windows.UTF16PtrFromString(string(dir))
	if err == nil {
		_, err = addDllDirectory(wide)
	}
	if err != nil {
		err = fmt.Errorf("AddDllDirectory %s: %w", dir, err)
		if undoErr := setDllDirectory(""); undoErr != nil {
			err = errors.Join(err, fmt.Errorf("SetDllDirectory reset: %w", undoErr))
		}
		return err
	}
	return nil
}
