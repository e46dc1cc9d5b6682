// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pybundle/pybundle/internal/bundle"
)

const formatText = "text"

func newLayoutCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the bundle paths derived from the root",
		Long: `Print every path the launchers derive from the bundle root. Nothing is
read from the bundle: the output is pure path arithmetic.

The cue format is checked against the bundle layout schema before it is
printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats := layoutFormats()
			if !slices.Contains(formats, format) {
				return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(formats, ", "))
			}

			l, err := opts.layout()
			if err != nil {
				return err
			}

			if format == formatText {
				renderLayout(cmd.OutOrStdout(), l)
				return nil
			}
			out, err := bundle.Export(l, bundle.ExportFormat(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: "+strings.Join(layoutFormats(), ", "))

	return cmd
}

func layoutFormats() []string {
	formats := []string{formatText}
	for _, f := range bundle.ExportFormats() {
		formats = append(formats, string(f))
	}
	return formats
}

func renderLayout(w io.Writer, l bundle.Layout) {
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("Bundle"), l.Root)
	for _, m := range l.Members() {
		suffix := ""
		if !m.Required {
			suffix = SubtitleStyle.Render(" (optional)")
		}
		fmt.Fprintf(w, "  %s %s%s\n", keyColumnStyle.Render(m.Name), m.Path, suffix)
	}
}
