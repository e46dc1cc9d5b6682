// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package platform

import (
	"os"
	"syscall"
)

var (
	interruptSignals = []os.Signal{os.Interrupt, syscall.SIGQUIT}
	forwardedSignals = []os.Signal{syscall.SIGTERM, syscall.SIGHUP}
)
