// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"
	"runtime"

	"github.com/pybundle/pybundle/pkg/fspath"
	"github.com/pybundle/pybundle/pkg/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

// Fixed member names, relative to the bundle root.
const (
	BinDirName         = "bin"
	ModuleDirName      = "lib"
	PackagesDirName    = "packages"
	RuntimeArchiveName = "python.zip"
	InterpreterStem    = "python"
)

// Member kinds.
const (
	KindDirectory MemberKind = iota + 1
	KindFile
)

// AppName is the stem of the companion application executable and the name of
// the application's top-level module. Set at build time with
// -ldflags "-X github.com/pybundle/pybundle/internal/bundle.AppName=...".
var AppName = "ExpenseTracker"

type (
	// Naming holds the platform and product inputs that, with the root,
	// fully determine a Layout.
	Naming struct {
		GOOS            string
		AppStem         string
		InterpreterStem string
	}

	// Layout is the set of absolute bundle paths derived from one root.
	// It is a value: recompute it with Derive rather than editing fields.
	Layout struct {
		Root                  types.FilesystemPath `json:"root" toml:"root"`
		BinDir                types.FilesystemPath `json:"bin_dir" toml:"bin_dir"`
		ModuleDir             types.FilesystemPath `json:"module_dir" toml:"module_dir"`
		PackagesDir           types.FilesystemPath `json:"packages_dir" toml:"packages_dir"`
		AppExecutable         types.FilesystemPath `json:"app_executable" toml:"app_executable"`
		InterpreterExecutable types.FilesystemPath `json:"interpreter_executable" toml:"interpreter_executable"`
		RuntimeArchive        types.FilesystemPath `json:"runtime_archive" toml:"runtime_archive"`
	}

	// MemberKind tells whether a bundle member is a directory or a regular file.
	MemberKind int

	// Member is one entry of the bundle catalog.
	Member struct {
		Name     string
		Kind     MemberKind
		Required bool
		Path     types.FilesystemPath
	}
)

// DefaultNaming returns the naming of this build on the running platform.
func DefaultNaming() Naming {
	return Naming{
		GOOS:            runtime.GOOS,
		AppStem:         AppName,
		InterpreterStem: InterpreterStem,
	}
}

// EntryCommand is the startup command of the background variant: it imports
// the application module and calls its entry point with no arguments.
func (n Naming) EntryCommand() string {
	return fmt.Sprintf("import %[1]s;%[1]s.exec_()", n.AppStem)
}

// Derive computes the layout for an executable at self. The root is the parent
// of the executable's directory. Pure path arithmetic; it never fails.
func Derive(self types.FilesystemPath, naming Naming) Layout {
	return DeriveFromRoot(fspath.Parent(self), naming)
}

// DeriveFromRoot computes the layout for an explicit bundle root.
func DeriveFromRoot(root types.FilesystemPath, naming Naming) Layout {
	bin := fspath.JoinStr(root, BinDirName)
	return Layout{
		Root:                  root,
		BinDir:                bin,
		ModuleDir:             fspath.JoinStr(root, ModuleDirName),
		PackagesDir:           fspath.JoinStr(root, PackagesDirName),
		AppExecutable:         fspath.JoinStr(bin, platform.ExecutableName(naming.GOOS, naming.AppStem)),
		InterpreterExecutable: fspath.JoinStr(bin, platform.ExecutableName(naming.GOOS, naming.InterpreterStem)),
		RuntimeArchive:        fspath.JoinStr(root, RuntimeArchiveName),
	}
}

// Members lists the catalog in validation order. The runtime archive is not
// required to launch: it is only opened by the embedded runtime on import.
func (l Layout) Members() []Member {
	return []Member{
		{Name: BinDirName, Kind: KindDirectory, Required: true, Path: l.BinDir},
		{Name: ModuleDirName, Kind: KindDirectory, Required: true, Path: l.ModuleDir},
		{Name: PackagesDirName, Kind: KindDirectory, Required: true, Path: l.PackagesDir},
		{Name: "application", Kind: KindFile, Required: true, Path: l.AppExecutable},
		{Name: "interpreter", Kind: KindFile, Required: true, Path: l.InterpreterExecutable},
		{Name: RuntimeArchiveName, Kind: KindFile, Required: false, Path: l.RuntimeArchive},
	}
}

// String returns "directory" or "file".
func (k MemberKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}
