// SPDX-License-Identifier: MPL-2.0

package runtime_test

import (
	"slices"
	"testing"

	"github.com/pybundle/pybundle/internal/runtime"
	"github.com/pybundle/pybundle/pkg/types"
)

func TestBuildCommandLine(t *testing.T) {
	t.Parallel()

	const target types.FilesystemPath = "/opt/app/bin/ExpenseTracker"

	tests := []struct {
		name     string
		args     []string
		wantArgs []string
		wantLine string
	}{
		{"no argv", nil, nil, "/opt/app/bin/ExpenseTracker"},
		{"program name only", []string{"launcher"}, nil, "/opt/app/bin/ExpenseTracker"},
		{"forwarded verbatim", []string{"launcher", "--db", "x.sqlite"}, []string{"--db", "x.sqlite"}, "/opt/app/bin/ExpenseTracker --db x.sqlite"},
		{"spaces are not quoted", []string{"launcher", "my file"}, []string{"my file"}, "/opt/app/bin/ExpenseTracker my file"},
		{"empty argument kept", []string{"launcher", "", "x"}, []string{"", "x"}, "/opt/app/bin/ExpenseTracker  x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := runtime.BuildCommandLine(target, tt.args)
			if got.Executable != target {
				t.Errorf("Executable = %q, want %q", got.Executable, target)
			}
			if !slices.Equal(got.Arguments, tt.wantArgs) {
				t.Errorf("Arguments = %q, want %q", got.Arguments, tt.wantArgs)
			}
			if got.String() != tt.wantLine {
				t.Errorf("String() = %q, want %q", got.String(), tt.wantLine)
			}
		})
	}
}

func TestBuildCommandLine_DoesNotAliasArgv(t *testing.T) {
	t.Parallel()

	args := []string{"launcher", "a"}
	got := runtime.BuildCommandLine("/x", args)
	args[1] = "changed"
	if got.Arguments[0] != "a" {
		t.Errorf("Arguments[0] = %q after caller mutation, want %q", got.Arguments[0], "a")
	}
}
