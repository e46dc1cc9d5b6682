// SPDX-License-Identifier: MPL-2.0

// Package bundletest provides bundle trees and platform fakes for launcher tests.
//
// This package is separate from testutil because it imports internal/bundle,
// whose own tests use testutil.
//
// # Usage
//
//	layout := bundletest.Build(t, bundletest.Without(bundle.PackagesDirName))
//	env := bundletest.NewEnv(map[string]string{"PATH": "/usr/bin"})
//	spawner := &bundletest.Spawner{ExitCode: 7}
package bundletest
