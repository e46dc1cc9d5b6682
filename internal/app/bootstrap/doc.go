// SPDX-License-Identifier: MPL-2.0

// Package bootstrap runs one launch attempt from start to finish: locate the
// running executable, derive and validate the bundle, publish its
// environment, then hand off to the launch strategy selected by the mode.
// Every failure before the hand-off is reported once and becomes exit code 1.
package bootstrap
