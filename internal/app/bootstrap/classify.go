// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/issue"
)

// Classify wraps a bundle loading failure into an ActionableError linked to
// its catalog entry. Errors it does not recognize are returned unchanged.
func Classify(err error) error {
	var (
		pathErr    *bundle.PathResolutionError
		missingErr *bundle.MissingBundleMemberError
		envErr     *bundle.EnvironmentWriteError
	)
	switch {
	case errors.As(err, &pathErr):
		return issue.NewErrorContext().
			WithOperation("locate launcher").
			WithIssue(issue.PathResolutionId).
			WithSuggestion("Start the launcher through its real path, not a relative link").
			Wrap(err).
			BuildError()
	case errors.As(err, &missingErr):
		return issue.NewErrorContext().
			WithOperation("load bundle").
			WithIssue(issue.MissingBundleMemberId).
			WithSuggestions(
				"Reinstall the application so the bundle is complete",
				"Run 'pybundle check' to list every missing member",
			).
			Wrap(err).
			BuildError()
	case errors.As(err, &envErr):
		return issue.NewErrorContext().
			WithOperation("prepare environment").
			WithIssue(issue.EnvironmentWriteId).
			WithSuggestion("Check that the environment block is not full and the bundle path is valid").
			Wrap(err).
			BuildError()
	default:
		return err
	}
}
