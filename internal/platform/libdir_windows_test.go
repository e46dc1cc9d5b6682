// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import (
	"errors"
	"slices"
	"testing"

	"golang.org/x/sys/windows"
)

func TestRegisterLibraryDir_UndoesPartialRegistration(t *testing.T) {
	// Not parallel: replaces the package's DLL directory calls.
	origSet, origAdd := setDllDirectory, addDllDirectory
	t.Cleanup(func() { setDllDirectory, addDllDirectory = origSet, origAdd })

	var dirs []string
	setDllDirectory = func(path string) error {
		dirs = append(dirs, path)
		return nil
	}
	addDllDirectory = func(*uint16) (uintptr, error) {
		return 0, windows.ERROR_INVALID_PARAMETER
	}

	err := registerLibraryDir(`C:\app\bin`)
	if !errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
		t.Fatalf("registerLibraryDir() = %v, want ERROR_INVALID_PARAMETER", err)
	}
	if want := []string{`C:\app\bin`, ""}; !slices.Equal(dirs, want) {
		t.Errorf("SetDllDirectory calls = %q, want %q", dirs, want)
	}
}

func TestRegisterLibraryDir_Success(t *testing.T) {
	origSet, origAdd := setDllDirectory, addDllDirectory
	t.Cleanup(func() { setDllDirectory, addDllDirectory = origSet, origAdd })

	var dirs []string
	setDllDirectory = func(path string) error {
		dirs = append(dirs, path)
		return nil
	}
	addDllDirectory = func(*uint16) (uintptr, error) { return 1, nil }

	if err := registerLibraryDir(`C:\app\bin`); err != nil {
		t.Fatalf("registerLibraryDir() error: %v", err)
	}
	if want := []string{`C:\app\bin`}; !slices.Equal(dirs, want) {
		t.Errorf("SetDllDirectory calls = %q, want %q", dirs, want)
	}
}
