// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	"github.com/pybundle/pybundle/pkg/types"
)

// stdlibMarkers are entries a usable standard-library archive must contain.
// Each marker accepts either the source or the compiled form.
var stdlibMarkers = [][]string{
	{"os.py", "os.pyc"},
	{"encodings/__init__.py", "encodings/__init__.pyc"},
}

// ArchiveReport summarizes a packaged runtime archive.
type ArchiveReport struct {
	Path    types.FilesystemPath
	Entries int
	Missing []string
}

// OK reports whether every standard-library marker was found.
func (r *ArchiveReport) OK() bool { return len(r.Missing) == 0 }

// InspectArchive opens the packaged runtime archive and checks that it holds
// a bootstrappable standard library. An unreadable archive is an error; a
// readable one with missing markers is reported through ArchiveReport.Missing.
func InspectArchive(archive types.FilesystemPath) (*ArchiveReport, error) {
	zr, err := zip.OpenReader(string(archive))
	if err != nil {
		return nil, fmt.Errorf("failed to open runtime archive %s: %w", archive, err)
	}
	defer zr.Close()

	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[path.Clean(strings.TrimPrefix(f.Name, "/"))] = true
	}

	report := &ArchiveReport{Path: archive, Entries: len(zr.File)}
	for _, alternatives := range stdlibMarkers {
		found := false
		for _, name := range alternatives {
			if names[name] {
				found = true
				break
			}
		}
		if !found {
			report.Missing = append(report.Missing, alternatives[0])
		}
	}
	return report, nil
}

// InspectDeep runs Inspect and additionally opens the runtime archive when it
// is a regular file, recording archive problems as non-blocking issues.
func (c Checker) InspectDeep(l Layout) *ValidationResult {
	result := c.Inspect(l)
	archive := Member{Name: RuntimeArchiveName, Kind: KindFile, Path: l.RuntimeArchive}
	info, err := c.stat(string(archive.Path))
	if err != nil || !info.Mode().IsRegular() {
		return result
	}
	report, err := InspectArchive(archive.Path)
	if err != nil {
		result.AddIssue(archive, err.Error())
		return result
	}
	for _, name := range report.Missing {
		result.AddIssue(archive, "archive has no "+name)
	}
	return result
}
