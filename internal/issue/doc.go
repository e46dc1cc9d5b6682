// SPDX-License-Identifier: MPL-2.0

// Package issue provides the launcher's fatal reporting sink and its
// actionable error type.
//
// Reporter writes every fatal message to the text diagnostic stream through a
// structured logger and, where the platform has a windowing subsystem, also
// raises a blocking alert. ActionableError carries the operation, resource and
// remediation hints shown to the user, and links to a Markdown issue page that
// the maintenance CLI renders with glamour.
package issue
