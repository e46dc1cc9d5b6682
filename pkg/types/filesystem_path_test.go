// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       FilesystemPath
		wantReason string
	}{
		{"absolute path", "/opt/app/bin/ExpenseTracker", ""},
		{"windows style", `C:\Program Files\App\bin\python.exe`, ""},
		{"path with spaces", "/path/to/my bundle", ""},
		{"empty", "", "must be non-empty"},
		{"whitespace only", "   ", "must be non-empty"},
		{"embedded NUL", "/opt/app\x00/bin", "must not contain NUL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.path.Validate()
			if tt.wantReason == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Fatalf("Validate() = %v, want ErrInvalidFilesystemPath", err)
			}
			var pathErr *InvalidFilesystemPathError
			if !errors.As(err, &pathErr) {
				t.Fatalf("error is not *InvalidFilesystemPathError: %T", err)
			}
			if pathErr.Value != tt.path || pathErr.Reason != tt.wantReason {
				t.Errorf("error = %+v, want value %q reason %q", pathErr, tt.path, tt.wantReason)
			}
		})
	}
}
