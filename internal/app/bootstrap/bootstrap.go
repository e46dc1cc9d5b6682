// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"io"
	"os"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/config"
	"github.com/pybundle/pybundle/internal/cpython"
	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/pkg/fspath"
	"github.com/pybundle/pybundle/pkg/types"
)

type (
	// Options configures Run. Every field is optional.
	Options struct {
		// Services defaults to platform.Native().
		Services *platform.Services
		// Naming defaults to bundle.DefaultNaming().
		Naming *bundle.Naming
		// Config defaults to config.Load().
		Config *config.Config
		// Root overrides the bundle root instead of deriving it from the
		// running executable.
		Root types.FilesystemPath
		// Interpreters creates the embedded runtime. Defaults to cpython.NewInterpreter.
		Interpreters runtime.InterpreterFactory
		// ChildOptions are passed to the child-process strategy.
		ChildOptions []runtime.ChildProcessOption

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// launch holds the resolved options of one Run.
	launch struct {
		svc      *platform.Services
		naming   bundle.Naming
		reporter *issue.Reporter
	}
)

// NewRegistry binds every launch mode to its strategy.
func NewRegistry(svc *platform.Services, interpreters runtime.InterpreterFactory, childOpts ...runtime.ChildProcessOption) *runtime.Registry {
	reg := runtime.NewRegistry()
	reg.Register(runtime.ModeLaunch, runtime.NewChildProcessRuntime(svc.Spawner, svc.Stat, childOpts...))
	reg.Register(runtime.ModeConsole, runtime.NewEmbeddedRuntime(interpreters, runtime.VariantInteractive))
	reg.Register(runtime.ModeWindowed, runtime.NewEmbeddedRuntime(interpreters, runtime.VariantBackground))
	return reg
}

// Run performs one launch attempt in mode with the launcher's own argument
// vector and returns the process exit code.
func Run(mode runtime.Mode, args []string, opts Options) types.ExitCode {
	opts = withDefaults(opts)
	cfg := opts.Config
	var cfgErr error
	if cfg == nil {
		cfg, cfgErr = config.Load()
	}

	reporter := issue.NewReporter(opts.Stderr, opts.Services.Alerter, issue.ReporterOptions{
		Level:   cfg.LogLevel.Level(),
		NoAlert: cfg.NoAlert,
		Verbose: cfg.Verbose,
	})
	logger := reporter.Logger()
	if cfgErr != nil {
		logger.Debug("ignoring invalid settings", "error", cfgErr)
	}

	l := &launch{svc: opts.Services, naming: *opts.Naming, reporter: reporter}

	rt, err := NewRegistry(opts.Services, opts.Interpreters, opts.ChildOptions...).Get(mode)
	if err != nil {
		reporter.ReportError(issue.NewErrorContext().
			WithOperation("select launch strategy").
			WithIssue(issue.UnknownLaunchModeId).
			Wrap(err).
			BuildError())
		return types.ExitLauncherFailure
	}
	logger.Debug("launch strategy selected", "mode", mode, "strategy", rt.Name(), "engine", cpython.EngineName)

	layout, err := l.load(opts.Root)
	if err != nil {
		reporter.ReportError(Classify(err))
		return types.ExitLauncherFailure
	}

	lc := runtime.NewLaunchContext(layout, l.naming, args, reporter)
	lc.Logger = logger
	lc.Stdin, lc.Stdout, lc.Stderr = opts.Stdin, opts.Stdout, opts.Stderr

	res := rt.Launch(lc)
	logger.Debug("launch finished", "code", res.ExitCode, "state", res.FinalState())
	return res.ExitCode
}

// Load resolves, validates and publishes the bundle without launching it.
func Load(svc *platform.Services, naming bundle.Naming, root types.FilesystemPath) (bundle.Layout, error) {
	l := &launch{svc: svc, naming: naming}
	return l.load(root)
}

// Locate derives the layout without touching the filesystem or environment.
func Locate(svc *platform.Services, naming bundle.Naming, root types.FilesystemPath) (bundle.Layout, error) {
	if root != "" {
		abs, err := fspath.Abs(root)
		if err != nil {
			return bundle.Layout{}, &bundle.PathResolutionError{Err: err}
		}
		return bundle.DeriveFromRoot(abs, naming), nil
	}
	self, err := bundle.Resolve(svc.Self)
	if err != nil {
		return bundle.Layout{}, err
	}
	return bundle.Derive(self, naming), nil
}

// load validates before any environment mutation: a bundle that fails
// validation leaves the environment exactly as it was.
func (l *launch) load(root types.FilesystemPath) (bundle.Layout, error) {
	layout, err := Locate(l.svc, l.naming, root)
	if err != nil {
		return bundle.Layout{}, err
	}
	l.debug("bundle located", "root", layout.Root)

	if err := (bundle.Checker{Stat: l.svc.Stat}).Validate(layout); err != nil {
		return bundle.Layout{}, err
	}
	if err := bundle.ApplyEnvironment(layout, l.svc.Env); err != nil {
		return bundle.Layout{}, err
	}
	l.debug("environment published", "home", layout.BinDir)
	return layout, nil
}

func (l *launch) debug(msg string, keyvals ...any) {
	if l.reporter != nil {
		l.reporter.Logger().Debug(msg, keyvals...)
	}
}

func withDefaults(opts Options) Options {
	if opts.Services == nil {
		opts.Services = platform.Native()
	}
	if opts.Naming == nil {
		n := bundle.DefaultNaming()
		n.GOOS = opts.Services.GOOS
		opts.Naming = &n
	}
	if opts.Interpreters == nil {
		opts.Interpreters = cpython.NewInterpreter
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return opts
}
