// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the pybundle maintenance commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pybundle/pybundle/internal/app/bootstrap"
	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/config"
	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	settings *viper.Viper
	root     string
	verbose  bool
}

// NewRootCommand builds the pybundle command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{settings: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "pybundle",
		Short: "Inspect and run bundled Python applications",
		Long: TitleStyle.Render("pybundle") + SubtitleStyle.Render(" - Inspect and run bundled Python applications") + `

A bundle is a directory holding the launcher binaries, the application
modules, third-party packages and a private Python runtime:

  <root>/bin/         launcher, application and interpreter executables
  <root>/lib/         application modules
  <root>/packages/    third-party packages
  <root>/python.zip   packaged standard library

` + SubtitleStyle.Render("Examples:") + `
  pybundle layout --root ./dist          Print the paths derived from a root
  pybundle check --root ./dist --deep    Validate a bundle and its runtime archive
  pybundle env --root ./dist             Show the environment a launch would set
  pybundle run --root ./dist --mode console -- script.py`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print full error chains")
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", "bundle root (default: derived from the pybundle executable)")
	_ = opts.settings.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newLayoutCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newEnvCommand(opts))
	rootCmd.AddCommand(newRunCommand(opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitLauncherFailure))
	}
}

// config reads the PYBUNDLE_* settings with the flags bound over them.
// Invalid values are reported on w and replaced by their defaults.
func (o *rootOptions) config(w io.Writer) *config.Config {
	cfg, err := config.FromViper(o.settings)
	if err != nil {
		fmt.Fprintln(w, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, cfg.Verbose))
	}
	return cfg
}

// layout derives the bundle layout from --root, or from the location of the
// running executable when --root is empty.
func (o *rootOptions) layout() (bundle.Layout, error) {
	l, err := bootstrap.Locate(platform.Native(), bundle.DefaultNaming(), types.FilesystemPath(o.root))
	if err != nil {
		return bundle.Layout{}, bootstrap.Classify(err)
	}
	return l, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
