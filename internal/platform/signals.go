// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"os/signal"
	"slices"
)

// HoldSignals keeps the launcher alive while it waits on a sub-execution.
// Interrupt signals are swallowed: the terminal already delivers them to the
// foreground child. Termination signals are passed to forward, which may be
// nil. The returned function ends the capture and must be called once; it
// returns only after forward is no longer running, so the caller may release
// the process forward signals afterwards.
func HoldSignals(forward func(os.Signal)) (release func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, slices.Concat(interruptSignals, forwardedSignals)...)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case sig := <-ch:
				if forward != nil && slices.Contains(forwardedSignals, sig) {
					forward(sig)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
		<-stopped
	}
}
