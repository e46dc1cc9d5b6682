// SPDX-License-Identifier: MPL-2.0

//go:build cpython && cgo

package cpython

import "github.com/pybundle/pybundle/internal/runtime"

// EngineName identifies the engine selected at build time.
const EngineName = "libpython"

// NewInterpreter returns the build's interpreter engine for lc.
func NewInterpreter(lc *runtime.LaunchContext) runtime.Interpreter {
	return NewEmbedEngine(lc.Stderr)
}
