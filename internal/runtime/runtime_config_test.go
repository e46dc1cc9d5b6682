// SPDX-License-Identifier: MPL-2.0

package runtime_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/internal/testutil/bundletest"
	"github.com/pybundle/pybundle/pkg/types"
)

func TestNewRuntimeConfiguration_Interactive(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	cfg := runtime.NewRuntimeConfiguration(l, bundletest.PosixNaming(), []string{"console", "script.py"}, runtime.VariantInteractive)

	wantPaths := []types.FilesystemPath{l.ModuleDir, l.PackagesDir, l.BinDir, l.RuntimeArchive}
	if !slices.Equal(cfg.SearchPaths, wantPaths) {
		t.Errorf("SearchPaths = %v, want %v", cfg.SearchPaths, wantPaths)
	}
	if cfg.UseEnvironment {
		t.Error("UseEnvironment = true, want false")
	}
	if cfg.UserSiteDirectory {
		t.Error("UserSiteDirectory = true, want false")
	}
	if !cfg.SafePath {
		t.Error("SafePath = false, want true")
	}
	if !cfg.InstallSignalHandlers {
		t.Error("InstallSignalHandlers = false, want true")
	}
	if !cfg.Interactive {
		t.Error("Interactive = false, want true")
	}
	if cfg.RunCommand != "" {
		t.Errorf("RunCommand = %q, want none", cfg.RunCommand)
	}
	if cfg.OptimizationLevel != 0 {
		t.Errorf("OptimizationLevel = %d, want 0", cfg.OptimizationLevel)
	}
	if cfg.Home != l.BinDir {
		t.Errorf("Home = %q, want %q", cfg.Home, l.BinDir)
	}
	if cfg.Prefix != l.Root || cfg.BasePrefix != l.Root {
		t.Errorf("Prefix, BasePrefix = %q, %q, want root %q", cfg.Prefix, cfg.BasePrefix, l.Root)
	}
	if !slices.Equal(cfg.Argv, []string{"console", "script.py"}) {
		t.Errorf("Argv = %q", cfg.Argv)
	}
}

func TestNewRuntimeConfiguration_Background(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	naming := bundletest.PosixNaming()
	bg := runtime.NewRuntimeConfiguration(l, naming, []string{"windowed"}, runtime.VariantBackground)
	fg := runtime.NewRuntimeConfiguration(l, naming, []string{"console"}, runtime.VariantInteractive)

	if bg.RunCommand != "import ExpenseTracker;ExpenseTracker.exec_()" {
		t.Errorf("RunCommand = %q", bg.RunCommand)
	}
	if bg.OptimizationLevel != runtime.BackgroundOptimizationLevel {
		t.Errorf("OptimizationLevel = %d, want %d", bg.OptimizationLevel, runtime.BackgroundOptimizationLevel)
	}
	if bg.OptimizationLevel == fg.OptimizationLevel {
		t.Error("background and interactive optimization levels must differ")
	}
	if bg.Interactive || bg.ParseArgv {
		t.Errorf("Interactive, ParseArgv = %v, %v, want false, false", bg.Interactive, bg.ParseArgv)
	}
	if !slices.Equal(bg.SearchPaths, fg.SearchPaths) {
		t.Error("both variants must share the search path order")
	}
}

func TestRuntimeConfiguration_Apply(t *testing.T) {
	t.Parallel()

	l := bundletest.OptApp()
	cfg := runtime.NewRuntimeConfiguration(l, bundletest.PosixNaming(), []string{"windowed", "--x"}, runtime.VariantBackground)
	interp := &bundletest.Interpreter{}
	w := interp.NewConfig()

	if err := cfg.Apply(w); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	rec := interp.Configs[0]
	wantPaths := []string{string(l.ModuleDir), string(l.PackagesDir), string(l.BinDir), string(l.RuntimeArchive)}
	if !slices.Equal(rec.SearchPaths, wantPaths) {
		t.Errorf("SearchPaths = %v, want %v", rec.SearchPaths, wantPaths)
	}
	wantInts := map[runtime.ConfigField]int{
		runtime.FieldModuleSearchPathsSet:  1,
		runtime.FieldInteractive:           0,
		runtime.FieldUserSiteDirectory:     0,
		runtime.FieldUseEnvironment:        0,
		runtime.FieldSafePath:              1,
		runtime.FieldInstallSignalHandlers: 1,
		runtime.FieldOptimizationLevel:     2,
		runtime.FieldParseArgv:             0,
	}
	for field, want := range wantInts {
		if got, ok := rec.Ints[field]; !ok || got != want {
			t.Errorf("%s = %d (set %v), want %d", field, got, ok, want)
		}
	}
	if rec.Strings[runtime.FieldHome] != string(l.BinDir) {
		t.Errorf("home = %q", rec.Strings[runtime.FieldHome])
	}
	if rec.Strings[runtime.FieldRunCommand] != cfg.RunCommand {
		t.Errorf("run_command = %q", rec.Strings[runtime.FieldRunCommand])
	}
	if !slices.Equal(rec.Argv, []string{"windowed", "--x"}) {
		t.Errorf("argv = %q", rec.Argv)
	}
	if rec.Order[len(rec.Order)-1] != runtime.FieldArgv {
		t.Errorf("last field written = %s, want argv", rec.Order[len(rec.Order)-1])
	}
}

func TestRuntimeConfiguration_ApplyInteractiveHasNoCommand(t *testing.T) {
	t.Parallel()

	cfg := runtime.NewRuntimeConfiguration(bundletest.OptApp(), bundletest.PosixNaming(), nil, runtime.VariantInteractive)
	interp := &bundletest.Interpreter{}
	if err := cfg.Apply(interp.NewConfig()); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if _, ok := interp.Configs[0].Strings[runtime.FieldRunCommand]; ok {
		t.Error("run_command was set for the interactive variant")
	}
}

func TestRuntimeConfiguration_ApplyStopsAtFirstRefusal(t *testing.T) {
	t.Parallel()

	tests := []runtime.ConfigField{
		runtime.FieldSafePath,
		runtime.FieldPrefix,
		runtime.FieldModuleSearchPaths,
		runtime.FieldRunCommand,
		runtime.FieldArgv,
	}

	for _, field := range tests {
		t.Run(string(field), func(t *testing.T) {
			t.Parallel()

			cause := errors.New("refused")
			interp := &bundletest.Interpreter{FailField: field, FailErr: cause}
			cfg := runtime.NewRuntimeConfiguration(bundletest.OptApp(), bundletest.PosixNaming(), []string{"w"}, runtime.VariantBackground)

			err := cfg.Apply(interp.NewConfig())
			if !errors.Is(err, runtime.ErrRuntimeConfiguration) {
				t.Fatalf("Apply() = %v, want ErrRuntimeConfiguration", err)
			}
			var cfgErr *runtime.RuntimeConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error is not *RuntimeConfigurationError: %T", err)
			}
			if cfgErr.Field != field || cfgErr.Cause() != cause {
				t.Errorf("error = {%s, %v}, want {%s, %v}", cfgErr.Field, cfgErr.Cause(), field, cause)
			}
			if slices.Contains(interp.Configs[0].Order, field) {
				t.Errorf("refused field %s was recorded as written", field)
			}
		})
	}
}

func TestVariant_String(t *testing.T) {
	t.Parallel()

	if got := runtime.VariantInteractive.String(); got != "interactive" {
		t.Errorf("VariantInteractive.String() = %q", got)
	}
	if got := runtime.VariantBackground.String(); got != "background" {
		t.Errorf("VariantBackground.String() = %q", got)
	}
	if got := runtime.Variant(9).String(); got != "Variant(9)" {
		t.Errorf("Variant(9).String() = %q", got)
	}
}
