// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import "os"

var (
	interruptSignals = []os.Signal{os.Interrupt}
	// Console control events reach every process attached to the console.
	forwardedSignals []os.Signal
)
