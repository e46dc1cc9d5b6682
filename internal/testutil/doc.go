// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that touch the real process
// environment: each helper fails the test on error and restores what it
// changed.
//
// Fake bundles and fake platform services live in the bundletest subpackage.
package testutil
