// SPDX-License-Identifier: MPL-2.0

// Package bundle turns the launcher's own location into a configured
// execution environment.
//
// A bundle is a self-contained distribution rooted one level above the
// directory holding the launcher:
//
//	<root>/
//	  bin/          launcher, companion executables, runtime shared libraries
//	  lib/          application modules
//	  packages/     third-party packages
//	  python.zip    packaged standard library
//
// Resolve finds the running executable, Derive computes the Layout from it
// without touching the filesystem, Checker.Validate gates everything on the
// required members being present, and ApplyEnvironment publishes the layout
// through process environment variables.
package bundle
