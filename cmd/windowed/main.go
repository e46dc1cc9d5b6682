// SPDX-License-Identifier: MPL-2.0

// Command windowed runs the application entry point in the bundled interpreter without a console.
// It must live in the bin/ directory of a bundle.
//
// On Windows, link it as a GUI program so no console window opens:
//
//	go build -ldflags "-H=windowsgui" ./cmd/windowed
package main

import (
	"os"

	"github.com/pybundle/pybundle/internal/app/bootstrap"
	"github.com/pybundle/pybundle/internal/runtime"
)

func main() {
	os.Exit(int(bootstrap.Run(runtime.ModeWindowed, os.Args, bootstrap.Options{})))
}
