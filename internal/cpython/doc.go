// SPDX-License-Identifier: MPL-2.0

// Package cpython provides the interpreters behind runtime.Interpreter.
//
// ProcessEngine, the default, realizes a runtime configuration by running the
// bundle's own interpreter executable with an isolated environment and the
// matching command-line switches. EmbedEngine, built with the cpython tag and
// cgo, links libpython and drives its initialization API directly.
//
// NewInterpreter returns whichever engine the build selected.
package cpython
