// SPDX-License-Identifier: MPL-2.0

package runtime_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/internal/testutil/bundletest"
)

func TestEmbeddedRuntime_Success(t *testing.T) {
	t.Parallel()

	interp := &bundletest.Interpreter{}
	rt := runtime.NewEmbeddedRuntime(interp.Factory(), runtime.VariantInteractive)
	lc, diag, alerter := newLaunchContext(bundletest.OptApp(), "-q")

	res := rt.Launch(lc)

	if res.ExitCode != 0 || res.Error != nil {
		t.Fatalf("Launch() = {%d, %v}, want {0, nil}", res.ExitCode, res.Error)
	}
	want := []runtime.State{
		runtime.StateIdle,
		runtime.StateConfigured,
		runtime.StateInitialized,
		runtime.StateRunning,
		runtime.StateTerminated,
	}
	if !slices.Equal(res.States, want) {
		t.Errorf("States = %v, want %v", res.States, want)
	}
	if interp.Runs != 1 {
		t.Errorf("RunMain called %d times, want 1", interp.Runs)
	}
	if interp.Initialized == nil || !interp.Initialized.Cleared {
		t.Error("configuration must be released after initialization")
	}
	if strings.Contains(diag.String(), issue.RuntimeFailureMessage) || alerter.Count() != 0 {
		t.Error("a zero status must not be reported")
	}
	if !slices.Equal(interp.Initialized.Argv, []string{"launcher", "-q"}) {
		t.Errorf("argv = %q, want the full argument vector", interp.Initialized.Argv)
	}
}

func TestEmbeddedRuntime_NonZeroIsAdvisory(t *testing.T) {
	t.Parallel()

	interp := &bundletest.Interpreter{ExitCode: 3}
	rt := runtime.NewEmbeddedRuntime(interp.Factory(), runtime.VariantBackground)
	lc, diag, alerter := newLaunchContext(bundletest.OptApp())

	res := rt.Launch(lc)

	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Error != nil {
		t.Errorf("Error = %v, a runtime status is not a launcher error", res.Error)
	}
	if !strings.Contains(diag.String(), issue.RuntimeFailureMessage) {
		t.Errorf("diagnostic %q lacks the advisory", diag.String())
	}
	if alerter.Count() != 1 {
		t.Errorf("alerts = %d, want 1", alerter.Count())
	}
	if res.FinalState() != runtime.StateTerminated {
		t.Errorf("FinalState() = %s, want terminated", res.FinalState())
	}
}

func TestEmbeddedRuntime_FieldFailureIsFatal(t *testing.T) {
	t.Parallel()

	interp := &bundletest.Interpreter{FailField: runtime.FieldHome, FailErr: errors.New("no memory")}
	rt := runtime.NewEmbeddedRuntime(interp.Factory(), runtime.VariantInteractive)
	lc, _, _ := newLaunchContext(bundletest.OptApp())

	res := rt.Launch(lc)

	if len(interp.Fatal) != 1 || !errors.Is(interp.Fatal[0], runtime.ErrRuntimeConfiguration) {
		t.Fatalf("Fatal = %v, want one RuntimeConfigurationError", interp.Fatal)
	}
	if interp.Initialized != nil || interp.Runs != 0 {
		t.Error("a half-built configuration must never reach Initialize or RunMain")
	}
	if res.ExitCode != 1 || res.FinalState() != runtime.StateFailed {
		t.Errorf("Launch() = {%d, %s}, want {1, failed}", res.ExitCode, res.FinalState())
	}
}

func TestEmbeddedRuntime_InitializationFailureIsFatal(t *testing.T) {
	t.Parallel()

	cause := errors.New("failed to import encodings")
	interp := &bundletest.Interpreter{InitErr: cause}
	rt := runtime.NewEmbeddedRuntime(interp.Factory(), runtime.VariantBackground)
	lc, diag, _ := newLaunchContext(bundletest.OptApp())

	res := rt.Launch(lc)

	if len(interp.Fatal) != 1 {
		t.Fatalf("Fatal called %d times, want 1", len(interp.Fatal))
	}
	var initErr *runtime.RuntimeInitializationError
	if !errors.As(interp.Fatal[0], &initErr) || initErr.Cause() != cause {
		t.Errorf("Fatal[0] = %v, want RuntimeInitializationError wrapping the cause", interp.Fatal[0])
	}
	if interp.Runs != 0 {
		t.Error("RunMain must not run after a refused initialization")
	}
	if strings.Contains(diag.String(), issue.RuntimeFailureMessage) {
		t.Error("initialization failures carry no custom message")
	}
	wantStates := []runtime.State{runtime.StateIdle, runtime.StateConfigured, runtime.StateFailed}
	if !slices.Equal(res.States, wantStates) {
		t.Errorf("States = %v, want %v", res.States, wantStates)
	}
}

func TestEmbeddedRuntime_Name(t *testing.T) {
	t.Parallel()

	rt := runtime.NewEmbeddedRuntime(nil, runtime.VariantBackground)
	if rt.Name() != "embedded-background" {
		t.Errorf("Name() = %q", rt.Name())
	}
	if rt.Variant() != runtime.VariantBackground {
		t.Errorf("Variant() = %s", rt.Variant())
	}
}
