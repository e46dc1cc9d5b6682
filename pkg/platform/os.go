// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// windowsExeExt is the only executable extension a bundle uses.
const windowsExeExt = ".exe"

// ExecutableExt returns the executable file extension for goos.
func ExecutableExt(goos string) string {
	if goos == Windows {
		return windowsExeExt
	}
	return ""
}

// ExecutableName returns the file name of an executable with the given stem on goos.
func ExecutableName(goos, stem string) string {
	return stem + ExecutableExt(goos)
}

// HostExecutableName is ExecutableName for the running operating system.
func HostExecutableName(stem string) string {
	return ExecutableName(runtime.GOOS, stem)
}

// HasWindowingSubsystem reports whether goos raises modal alerts for fatal errors.
func HasWindowingSubsystem(goos string) bool {
	return goos == Windows
}

// HasLibraryDirRegistration reports whether goos isolates the dynamic-library
// search path per process, so the bundle's binaries directory must be
// registered explicitly.
func HasLibraryDirRegistration(goos string) bool {
	return goos == Windows
}
