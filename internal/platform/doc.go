// SPDX-License-Identifier: MPL-2.0

// Package platform is the launcher's capability set over the host operating
// system: locating the running executable, mutating the process environment,
// registering trusted library directories, spawning the companion process and
// raising the fatal alert.
//
// Each capability is an interface so the launch flow is written once and tests
// substitute fakes. Native returns the implementation for the running GOOS,
// selected at build time through file build constraints.
package platform
