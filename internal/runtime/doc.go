// SPDX-License-Identifier: MPL-2.0

// Package runtime implements the launch strategies that hand control to the
// bundled application once the bundle has been validated.
//
// Two strategies exist:
//   - ChildProcessRuntime spawns the companion executable, waits for it, and
//     returns its exit code verbatim.
//   - EmbeddedRuntime writes an isolated RuntimeConfiguration into an
//     Interpreter, initializes it, and runs its main entry point.
//
// Each strategy walks a small state machine (see State) so the order of its
// steps can be asserted in tests.
package runtime
