// SPDX-License-Identifier: MPL-2.0

// Command launcher starts the bundled application executable as a child process and exits with its status.
// It must live in the bin/ directory of a bundle.
package main

import (
	"os"

	"github.com/pybundle/pybundle/internal/app/bootstrap"
	"github.com/pybundle/pybundle/internal/runtime"
)

func main() {
	os.Exit(int(bootstrap.Run(runtime.ModeLaunch, os.Args, bootstrap.Options{})))
}
