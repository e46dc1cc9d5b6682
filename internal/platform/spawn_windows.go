// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import (
	"os"
	"os/exec"
	"syscall"
)

// Spawn hands the concatenated command line to CreateProcess verbatim.
// The application name is passed separately, so spaces in the bundle path
// do not change which image is started.
func (nativeSpawner) Spawn(spec SpawnSpec) (Process, error) {
	path := string(spec.Command.Executable)
	cmd := &exec.Cmd{
		Path:        path,
		Args:        append([]string{path}, spec.Command.Arguments...),
		SysProcAttr: &syscall.SysProcAttr{CmdLine: spec.Command.String()},
	}
	return start(cmd, spec)
}

// exitStatus returns the raw process exit code; NTSTATUS values pass through.
func exitStatus(ps *os.ProcessState) int {
	return int(ps.Sys().(syscall.WaitStatus).ExitCode)
}
