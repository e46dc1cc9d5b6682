// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/pybundle/pybundle/pkg/types"
)

type (
	nativeSpawner struct{}

	// cmdProcess owns one started exec.Cmd until Release.
	cmdProcess struct {
		cmd      *exec.Cmd
		released bool
	}
)

// start runs cmd and wraps a refusal in ProcessCreationError.
func start(cmd *exec.Cmd, spec SpawnSpec) (Process, error) {
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	return StartCommand(cmd)
}

// StartCommand starts a fully prepared cmd and returns it as a Process.
// Unlike Spawn, the arguments in cmd.Args are passed exactly as given.
func StartCommand(cmd *exec.Cmd) (Process, error) {
	if err := cmd.Start(); err != nil {
		return nil, &ProcessCreationError{
			Path: types.FilesystemPath(cmd.Path),
			Code: errorCode(err),
			Err:  err,
		}
	}
	return &cmdProcess{cmd: cmd}, nil
}

// Wait blocks until the child exits. A non-zero exit is data, not an error:
// the error return is reserved for failures of the wait itself.
func (p *cmdProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr.ProcessState), nil
	}
	if p.cmd.ProcessState != nil {
		return exitStatus(p.cmd.ProcessState), err
	}
	return 1, err
}

// Signal delivers sig while the process is still owned.
func (p *cmdProcess) Signal(sig os.Signal) error {
	if p.released || p.cmd.Process == nil {
		return os.ErrProcessDone
	}
	return p.cmd.Process.Signal(sig)
}

// Release drops the process handle. Wait already closes the handle on some
// platforms, in which case the EINVAL from a second release is expected.
func (p *cmdProcess) Release() error {
	if p.released || p.cmd.Process == nil {
		return nil
	}
	p.released = true
	err := p.cmd.Process.Release()
	if err != nil && p.cmd.ProcessState != nil && errors.Is(err, syscall.EINVAL) {
		return nil
	}
	return err
}

// errorCode extracts the platform error number from a spawn failure.
func errorCode(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}
