// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/issue"
	"github.com/pybundle/pybundle/pkg/types"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var deep bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the bundle members",
		Long: `Check every bundle member, the optional ones included, and report all
problems instead of stopping at the first one.

With --deep the runtime archive is opened and checked for a usable
standard library. Archive problems are warnings: the launchers never
read the archive themselves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := opts.layout()
			if err != nil {
				return err
			}

			inspect := bundle.Checker{}.Inspect
			if deep {
				inspect = bundle.Checker{}.InspectDeep
			}
			result := inspect(l)

			renderValidation(cmd.OutOrStdout(), result)
			if result.Valid {
				return nil
			}
			renderIssue(cmd.ErrOrStderr(), issue.MissingBundleMemberId)
			return &ExitError{Code: types.ExitLauncherFailure}
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "also inspect the runtime archive contents")

	return cmd
}

func renderValidation(w io.Writer, result *bundle.ValidationResult) {
	problems := make(map[string][]bundle.ValidationIssue)
	for _, vi := range result.Issues {
		problems[vi.Member] = append(problems[vi.Member], vi)
	}

	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("Bundle"), result.Layout.Root)
	for _, m := range result.Layout.Members() {
		found := problems[m.Name]
		if len(found) == 0 {
			fmt.Fprintf(w, "  %s %s %s\n", SuccessStyle.Render("✓"), keyColumnStyle.Render(m.Name), m.Path)
			continue
		}
		for _, vi := range found {
			mark := ErrorStyle.Render("✗")
			if !vi.Required {
				mark = WarningStyle.Render("!")
			}
			fmt.Fprintf(w, "  %s %s %s: %s\n", mark, keyColumnStyle.Render(m.Name), vi.Path, vi.Message)
		}
	}

	if result.Valid {
		fmt.Fprintln(w, SuccessStyle.Render("Bundle is complete"))
	} else {
		fmt.Fprintln(w, ErrorStyle.Render("Bundle is incomplete"))
	}
}

// renderIssue prints the catalog entry for id, styled only on a terminal.
func renderIssue(w io.Writer, id issue.Id) {
	out, err := issue.Get(id).Render(markdownStyle(w))
	if err != nil {
		return
	}
	fmt.Fprint(w, out)
}

func markdownStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
