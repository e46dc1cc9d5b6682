// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"mvdan.cc/sh/v3/shell"

	"github.com/pybundle/pybundle/pkg/types"
)

// Spawn starts the target with the forwarded arguments split by shell word
// rules. The arguments were concatenated unquoted, so quoting the caller
// added before the hand-off is honored the same way /bin/sh would honor it.
// Variables are expanded against the already prepared process environment.
func (nativeSpawner) Spawn(spec SpawnSpec) (Process, error) {
	words, err := shell.Fields(spec.Command.ArgumentString(), os.Getenv)
	if err != nil {
		return nil, &ProcessCreationError{
			Path: spec.Command.Executable,
			Code: uint32(syscall.EINVAL),
			Err:  fmt.Errorf("split arguments: %w", err),
		}
	}
	path := string(spec.Command.Executable)
	cmd := &exec.Cmd{
		Path: path,
		Args: append([]string{path}, words...),
	}
	return start(cmd, spec)
}

// exitStatus maps a signal death to the shell's 128+N convention.
func exitStatus(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return int(types.SignalExitCode(int(ws.Signal())))
	}
	return ps.ExitCode()
}
