// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pybundle/pybundle/internal/app/bootstrap"
	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/pkg/types"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var mode string

	modes := make([]string, 0, len(runtime.Modes()))
	for _, m := range runtime.Modes() {
		modes = append(modes, string(m))
	}

	cmd := &cobra.Command{
		Use:   "run [flags] [-- args...]",
		Short: "Run the bundled application the way a launcher would",
		Long: `Run the full launch sequence against a bundle: locate, validate, publish
the environment and hand off to the strategy of the selected mode.

` + SubtitleStyle.Render("Modes:") + `
  launch     start the application executable as a child process
  console    run the embedded interpreter interactively
  windowed   run the application entry point in the embedded interpreter

Arguments after -- are passed to the application unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := runtime.Mode(mode)
			if err := m.Validate(); err != nil {
				return err
			}

			code := bootstrap.Run(m, append([]string{mode}, args...), bootstrap.Options{
				Config: opts.config(cmd.ErrOrStderr()),
				Root:   types.FilesystemPath(opts.root),
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			if code != types.ExitSuccess {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(runtime.ModeLaunch), "launch mode: "+strings.Join(modes, ", "))

	return cmd
}
