// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pybundle/pybundle/pkg/types"
)

type (
	// ActionableError is a launcher failure as shown to the user: the step
	// that failed, the bundle path involved, what to try, and the catalog
	// entry that explains it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load bundle").
	//		WithPath(layout.PackagesDir).
	//		WithIssue(issue.MissingBundleMemberId).
	//		WithSuggestion("Reinstall the application").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load bundle".
		Operation string
		// Path is the bundle path involved, if any.
		Path types.FilesystemPath
		// Suggestions are shown as a bulleted list.
		Suggestions []string
		// Issue is the catalog entry describing the failure, or zero.
		Issue Id
		// Cause is the error that triggered this one.
		Cause error
	}

	// ErrorContext builds an ActionableError step by step.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>[: <path>][: <cause>]".
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Path != "" {
		msg.WriteString(": ")
		msg.WriteString(string(e.Path))
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for the diagnostic stream and the alert:
//
//	<catalog title>
//	failed to <operation>: <path>: <cause>
//	  • <suggestion>
//
// The title line is present when the error is linked to a catalog entry.
// Verbose output adds the numbered error chain and the reference links.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	entry := Get(e.Issue)
	if entry != nil {
		if title := entry.Title(); title != "" {
			msg.WriteString(title)
			msg.WriteString("\n")
		}
	}
	msg.WriteString(e.Error())

	for i, suggestion := range e.Suggestions {
		if i == 0 {
			msg.WriteString("\n")
		}
		msg.WriteString("\n  • ")
		msg.WriteString(suggestion)
	}

	if !verbose {
		return msg.String()
	}

	if e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	if entry != nil {
		for _, link := range entry.DocLinks() {
			msg.WriteString("\n\nSee also: ")
			msg.WriteString(string(link))
		}
	}
	return msg.String()
}

// HasSuggestions reports whether the error tells the user what to try.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the step that failed, e.g. "start application".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithPath sets the bundle path involved.
func (c *ErrorContext) WithPath(p types.FilesystemPath) *ErrorContext {
	c.err.Path = p
	return c
}

// WithSuggestion appends one suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions in order.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sugs...)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.Issue = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build returning the error interface, so a missing operation
// yields a true nil error.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
