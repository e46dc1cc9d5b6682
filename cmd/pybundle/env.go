// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/pybundle/pybundle/internal/bundle"
)

func newEnvCommand(opts *rootOptions) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the environment a launch would set",
		Long: `Compute the variables a launcher would write for this bundle, against the
current environment, without changing anything.

With --export the assignments are printed as shell export statements. Values
are single-quoted; values that POSIX quoting cannot express (non-printable
characters or invalid UTF-8) use the $'...' form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := opts.layout()
			if err != nil {
				return err
			}

			plan := bundle.PlanEnvironment(l, os.LookupEnv)
			w := cmd.OutOrStdout()
			for _, a := range plan.Assignments {
				if export {
					if err := writeExport(w, a.Key, a.Value); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(w, "%s=%s\n", a.Key, a.Value)
			}
			if !export {
				fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render("library directory:"), plan.LibraryDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "print shell export statements")

	return cmd
}

// writeExport prints one export statement that a shell reads back as the exact
// value.
func writeExport(w io.Writer, key, value string) error {
	quoted, err := syntax.Quote(value, syntax.LangPOSIX)
	if err != nil {
		quoted, err = syntax.Quote(value, syntax.LangBash)
	}
	if err != nil {
		return fmt.Errorf("cannot quote %s: %w", key, err)
	}
	_, err = fmt.Fprintf(w, "export %s=%s\n", key, quoted)
	return err
}
