// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		PathResolutionId,
		MissingBundleMemberId,
		EnvironmentWriteId,
		TargetNotFoundId,
		ProcessCreationId,
		RuntimeConfigurationId,
		RuntimeFailedId,
		UnknownLaunchModeId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil, every Id needs a catalog entry", id)
		}
	}

	if PathResolutionId != 1 {
		t.Errorf("PathResolutionId = %d, want 1", PathResolutionId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{PathResolutionId, false, "could not locate itself"},
		{MissingBundleMemberId, false, "bundle is incomplete"},
		{EnvironmentWriteId, false, "prepare its environment"},
		{TargetNotFoundId, false, "executable was not found"},
		{ProcessCreationId, false, "could not be started"},
		{RuntimeConfigurationId, false, "rejected its configuration"},
		{RuntimeFailedId, false, "reported a fatal error"},
		{UnknownLaunchModeId, false, "Unknown launch mode"},
		{Id(9999), true, "unknown id"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			got := Get(tt.id)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestIssue_DocLinksClone(t *testing.T) {
	got := Get(RuntimeFailedId)
	links := got.DocLinks()
	if len(links) == 0 {
		t.Fatal("RuntimeFailed issue should carry doc links")
	}
	links[0] = "modified"
	if got.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(RuntimeConfigurationId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "## See also") || !strings.Contains(rendered, string(initConfigDocs)) {
		t.Errorf("Render() output missing doc links:\n%s", rendered)
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered by Id at index %d", i)
		}
	}
}

func TestIssue_Title(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		if is.Title() == "" {
			t.Errorf("issue %d has no title heading", is.Id())
		}
	}
	if got := Get(MissingBundleMemberId).Title(); got != "The application bundle is incomplete!" {
		t.Errorf("Title() = %q", got)
	}
}
