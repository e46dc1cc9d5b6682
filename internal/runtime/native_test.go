// SPDX-License-Identifier: MPL-2.0

package runtime_test

import (
	"bytes"
	"errors"
	"os"
	"slices"
	"strings"
	"syscall"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/internal/testutil/bundletest"
)

func newLaunchContext(l bundle.Layout, args ...string) (*runtime.LaunchContext, *bytes.Buffer, *bundletest.Alerter) {
	var diag bytes.Buffer
	alerter := &bundletest.Alerter{}
	reporter := issue.NewReporter(&diag, alerter, issue.ReporterOptions{Level: log.DebugLevel})
	lc := &runtime.LaunchContext{
		Layout:   l,
		Naming:   bundletest.PosixNaming(),
		Args:     append([]string{"launcher"}, args...),
		Reporter: reporter,
		Logger:   reporter.Logger(),
	}
	return lc, &diag, alerter
}

func noHold(func(os.Signal)) func() { return func() {} }

func TestChildProcessRuntime_MissingTarget(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	tree := bundletest.NewTree(l).Remove(l.AppExecutable)
	spawner := &bundletest.Spawner{}
	rt := runtime.NewChildProcessRuntime(spawner, tree.Stat, runtime.WithSignalHold(noHold))

	lc, diag, alerter := newLaunchContext(l)
	res := rt.Launch(lc)

	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if !errors.Is(res.Error, runtime.ErrTargetNotFound) {
		t.Errorf("Error = %v, want ErrTargetNotFound", res.Error)
	}
	if spawner.Calls() != 0 {
		t.Errorf("Spawn called %d times, want 0", spawner.Calls())
	}
	if want := string(l.AppExecutable) + " not found"; !strings.Contains(diag.String(), want) {
		t.Errorf("diagnostic %q does not contain %q", diag.String(), want)
	}
	if alerter.Count() != 1 {
		t.Errorf("alerts = %d, want 1", alerter.Count())
	}
	want := []runtime.State{runtime.StateIdle, runtime.StateCommandBuilt, runtime.StateFailed}
	if !slices.Equal(res.States, want) {
		t.Errorf("States = %v, want %v", res.States, want)
	}
}

func TestChildProcessRuntime_TargetNotRegularFile(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	tree := bundletest.NewTree(l).Replace(l.AppExecutable, bundle.KindDirectory)
	spawner := &bundletest.Spawner{}
	rt := runtime.NewChildProcessRuntime(spawner, tree.Stat, runtime.WithSignalHold(noHold))

	lc, _, _ := newLaunchContext(l)
	res := rt.Launch(lc)

	if res.ExitCode != 1 || spawner.Calls() != 0 {
		t.Errorf("ExitCode = %d with %d spawns, want 1 with 0", res.ExitCode, spawner.Calls())
	}
}

func TestChildProcessRuntime_SpawnFailure(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	spawner := &bundletest.Spawner{Err: &platform.ProcessCreationError{
		Path: l.AppExecutable,
		Code: 5,
		Err:  syscall.EACCES,
	}}
	rt := runtime.NewChildProcessRuntime(spawner, bundletest.NewTree(l).Stat, runtime.WithSignalHold(noHold))

	lc, diag, _ := newLaunchContext(l)
	res := rt.Launch(lc)

	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if !errors.Is(res.Error, platform.ErrProcessCreation) {
		t.Errorf("Error = %v, want ErrProcessCreation", res.Error)
	}
	if !strings.Contains(diag.String(), "CreateProcess failed (5)") {
		t.Errorf("diagnostic %q does not carry the platform error code", diag.String())
	}
	if res.FinalState() != runtime.StateFailed {
		t.Errorf("FinalState() = %s, want failed", res.FinalState())
	}
	if spawner.Outstanding() != 0 {
		t.Errorf("Outstanding() = %d, want 0", spawner.Outstanding())
	}
}

func TestChildProcessRuntime_ExitCodePassThrough(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	spawner := &bundletest.Spawner{ExitCode: 7}
	rt := runtime.NewChildProcessRuntime(spawner, bundletest.NewTree(l).Stat, runtime.WithSignalHold(noHold))

	for i := range 100 {
		lc, _, alerter := newLaunchContext(l)
		res := rt.Launch(lc)
		if res.ExitCode != 7 {
			t.Fatalf("iteration %d: ExitCode = %d, want 7", i, res.ExitCode)
		}
		if res.Error != nil {
			t.Fatalf("iteration %d: Error = %v, want nil", i, res.Error)
		}
		if alerter.Count() != 0 {
			t.Fatalf("iteration %d: a child exit code must not raise an alert", i)
		}
	}

	if spawner.Calls() != 100 {
		t.Errorf("Spawn called %d times, want 100", spawner.Calls())
	}
	if spawner.Outstanding() != 0 {
		t.Errorf("Outstanding() = %d after 100 launches, want 0", spawner.Outstanding())
	}
}

func TestChildProcessRuntime_StateSequence(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	rt := runtime.NewChildProcessRuntime(&bundletest.Spawner{}, bundletest.NewTree(l).Stat, runtime.WithSignalHold(noHold))

	lc, _, _ := newLaunchContext(l)
	res := rt.Launch(lc)

	want := []runtime.State{
		runtime.StateIdle,
		runtime.StateCommandBuilt,
		runtime.StateSpawned,
		runtime.StateWaited,
		runtime.StateSucceeded,
	}
	if !slices.Equal(res.States, want) {
		t.Errorf("States = %v, want %v", res.States, want)
	}
	if !res.Success() {
		t.Errorf("Success() = false, want true")
	}
}

func TestChildProcessRuntime_WaitError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exitCode int
		wantCode int
	}{
		{"no exit status", 1, 1},
		{"exit status kept", 3, 3},
		{"zero status is not success", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := bundletest.OptApp()
			spawner := &bundletest.Spawner{ExitCode: tt.exitCode, WaitErr: errors.New("wait interrupted")}
			rt := runtime.NewChildProcessRuntime(spawner, bundletest.NewTree(l).Stat, runtime.WithSignalHold(noHold))

			lc, diag, alerter := newLaunchContext(l)
			res := rt.Launch(lc)

			if int(res.ExitCode) != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.wantCode)
			}
			if res.Success() || res.Error == nil {
				t.Errorf("Result = %+v, want a failure carrying the wait error", res)
			}
			want := []runtime.State{
				runtime.StateIdle,
				runtime.StateCommandBuilt,
				runtime.StateSpawned,
				runtime.StateWaited,
				runtime.StateFailed,
			}
			if !slices.Equal(res.States, want) {
				t.Errorf("States = %v, want %v", res.States, want)
			}
			if !strings.Contains(diag.String(), "wait interrupted") || !strings.Contains(diag.String(), string(l.AppExecutable)) {
				t.Errorf("diagnostic %q does not report the wait failure", diag.String())
			}
			if alerter.Count() != 1 {
				t.Errorf("alerts = %d, want 1", alerter.Count())
			}
			if spawner.Outstanding() != 0 {
				t.Errorf("Outstanding() = %d, want 0", spawner.Outstanding())
			}
		})
	}
}

func TestChildProcessRuntime_ForwardsArguments(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	spawner := &bundletest.Spawner{}
	rt := runtime.NewChildProcessRuntime(spawner, bundletest.NewTree(l).Stat,
		runtime.WithSignalHold(noHold),
		runtime.WithTarget(runtime.InterpreterTarget))

	lc, _, _ := newLaunchContext(l, "-m", "ExpenseTracker", "a b")
	rt.Launch(lc)

	if spawner.Calls() != 1 {
		t.Fatalf("Spawn called %d times, want 1", spawner.Calls())
	}
	got := spawner.Specs[0].Command
	if got.Executable != l.InterpreterExecutable {
		t.Errorf("Executable = %q, want %q", got.Executable, l.InterpreterExecutable)
	}
	want := string(l.InterpreterExecutable) + " -m ExpenseTracker a b"
	if got.String() != want {
		t.Errorf("command line = %q, want %q", got.String(), want)
	}
}

func TestChildProcessRuntime_ForwardsTerminationSignal(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	spawner := &bundletest.Spawner{}
	hold := func(forward func(os.Signal)) func() {
		forward(syscall.SIGTERM)
		return func() {}
	}
	rt := runtime.NewChildProcessRuntime(spawner, bundletest.NewTree(l).Stat, runtime.WithSignalHold(hold))

	lc, _, _ := newLaunchContext(l)
	rt.Launch(lc)

	if !slices.Equal(spawner.Signals, []os.Signal{syscall.SIGTERM}) {
		t.Errorf("Signals = %v, want [SIGTERM]", spawner.Signals)
	}
}
