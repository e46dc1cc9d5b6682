// SPDX-License-Identifier: MPL-2.0

// Package platform holds the pure, GOOS-keyed naming conventions of a bundle:
// operating system names and the executable file extension. It performs no
// system calls; the capability set that does lives in internal/platform.
package platform
