// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultAlertTitle is the caption of the fatal alert.
const DefaultAlertTitle = "Error"

// RuntimeFailureMessage is the advisory reported when the bundled runtime
// exits with a non-zero status.
const RuntimeFailureMessage = "the bundled runtime reported a fatal error"

type (
	// Alerter raises a blocking visual alert. It must not fail the caller.
	Alerter interface {
		Alert(title, message string)
	}

	// ReporterOptions configures a Reporter.
	ReporterOptions struct {
		// Level is the minimum level written to the diagnostic stream.
		Level log.Level
		// Title is the alert caption. Defaults to DefaultAlertTitle.
		Title string
		// NoAlert suppresses the visual alert; the text diagnostic is still written.
		NoAlert bool
		// Verbose includes the full error chain in reported errors.
		Verbose bool
	}

	// Reporter is the fatal reporting sink: every message goes to the text
	// diagnostic stream, and to the alerter when one is configured.
	Reporter struct {
		logger  *log.Logger
		alerter Alerter
		title   string
		noAlert bool
		verbose bool
	}
)

// NewLogger returns the launcher's diagnostic logger writing to w.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "pybundle",
		Level:  level,
	})
}

// NewReporter creates a Reporter writing diagnostics to w. A nil alerter
// reports to the diagnostic stream only.
func NewReporter(w io.Writer, alerter Alerter, opts ReporterOptions) *Reporter {
	title := opts.Title
	if title == "" {
		title = DefaultAlertTitle
	}
	return &Reporter{
		logger:  NewLogger(w, opts.Level),
		alerter: alerter,
		title:   title,
		noAlert: opts.NoAlert,
		verbose: opts.Verbose,
	}
}

// Logger returns the diagnostic logger for debug breadcrumbs.
func (r *Reporter) Logger() *log.Logger {
	return r.logger
}

// Report writes message to the diagnostic stream, then raises the alert.
// The diagnostic is written first so it survives an alert that never returns.
func (r *Reporter) Report(message string) {
	r.logger.Error(message)
	if r.alerter != nil && !r.noAlert {
		r.alerter.Alert(r.title, message)
	}
}

// ReportError reports err, expanded with suggestions when it is an ActionableError.
func (r *Reporter) ReportError(err error) {
	if err == nil {
		return
	}
	r.Report(FormatError(err, r.verbose))
}

// FormatError renders err for display. ActionableError values use their
// Format method; other errors use Error().
func FormatError(err error, verbose bool) string {
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
