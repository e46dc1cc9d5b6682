// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared across the launcher:
// exit codes and filesystem paths, each with its own validation error.
package types
