// SPDX-License-Identifier: MPL-2.0

package bundletest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/pkg/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

type (
	// Option configures Build.
	Option func(*options)

	options struct {
		naming    bundle.Naming
		omit      map[string]bool
		rootName  string
		appScript string
		archive   []string
	}
)

// Without leaves out the catalog member with the given name
// (for example bundle.PackagesDirName or "application").
func Without(member string) Option {
	return func(o *options) { o.omit[member] = true }
}

// WithNaming overrides the naming used to derive the layout.
func WithNaming(n bundle.Naming) Option {
	return func(o *options) { o.naming = n }
}

// WithRootName names the bundle root directory, "app" by default.
func WithRootName(name string) Option {
	return func(o *options) { o.rootName = name }
}

// WithAppScript writes body as the application executable with mode 0o755.
func WithAppScript(body string) Option {
	return func(o *options) { o.appScript = body }
}

// WithArchive writes the runtime archive with the given entry names.
func WithArchive(entries ...string) Option {
	return func(o *options) { o.archive = entries }
}

// PosixNaming is the naming of a Linux build, independent of the host.
func PosixNaming() bundle.Naming {
	return bundle.Naming{GOOS: platform.Linux, AppStem: "ExpenseTracker", InterpreterStem: bundle.InterpreterStem}
}

// OptApp returns the layout of a bundle rooted at /opt/app. Nothing exists on
// disk: pair it with NewTree.
func OptApp() bundle.Layout {
	root := filepath.Join(string(filepath.Separator)+"opt", "app")
	return bundle.DeriveFromRoot(types.FilesystemPath(root), PosixNaming())
}

// Build creates a bundle under t.TempDir() and returns its layout. By default
// every required member exists, executables are empty files and the runtime
// archive holds a minimal standard library.
func Build(t testing.TB, opts ...Option) bundle.Layout {
	t.Helper()

	o := &options{
		naming:   bundle.DefaultNaming(),
		omit:     map[string]bool{},
		rootName: "app",
		archive:  []string{"os.pyc", "encodings/__init__.pyc"},
	}
	for _, opt := range opts {
		opt(o)
	}

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	layout := bundle.DeriveFromRoot(types.FilesystemPath(filepath.Join(root, o.rootName)), o.naming)

	for _, m := range layout.Members() {
		if o.omit[m.Name] {
			continue
		}
		switch {
		case m.Kind == bundle.KindDirectory:
			mustMkdir(t, string(m.Path))
		case m.Path == layout.RuntimeArchive:
			writeArchive(t, string(m.Path), o.archive)
		case m.Path == layout.AppExecutable && o.appScript != "":
			writeFile(t, string(m.Path), o.appScript, 0o755)
		default:
			writeFile(t, string(m.Path), "", 0o755)
		}
	}
	return layout
}

func mustMkdir(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

func writeFile(t testing.TB, path, body string, perm os.FileMode) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(body), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeArchive(t testing.TB, path string, entries []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive %s: %v", path, err)
	}
	zw := zip.NewWriter(f)
	for _, name := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to archive: %v", name, err)
		}
		if _, err := w.Write([]byte("#")); err != nil {
			t.Fatalf("failed to write %s to archive: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
}
