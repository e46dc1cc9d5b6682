// SPDX-License-Identifier: MPL-2.0

// Command console runs the bundled interpreter interactively with the bundle's modules on the search path.
// It must live in the bin/ directory of a bundle.
package main

import (
	"os"

	"github.com/pybundle/pybundle/internal/app/bootstrap"
	"github.com/pybundle/pybundle/internal/runtime"
)

func main() {
	os.Exit(int(bootstrap.Run(runtime.ModeConsole, os.Args, bootstrap.Options{})))
}
