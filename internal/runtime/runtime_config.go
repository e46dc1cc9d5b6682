// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"slices"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/pkg/types"
)

const (
	// VariantInteractive continues into the read-eval loop, or into whatever
	// the forwarded arguments ask for.
	VariantInteractive Variant = iota
	// VariantBackground runs the application's fixed entry point.
	VariantBackground
)

// BackgroundOptimizationLevel is requested by the background variant: it
// strips docstrings and assertions.
const BackgroundOptimizationLevel = 2

type (
	// Variant selects how the embedded runtime is driven.
	Variant int

	// RuntimeConfiguration is the isolated configuration handed to the
	// embedded runtime. It is built fresh for every launch.
	RuntimeConfiguration struct {
		// SearchPaths shadow one another in order.
		SearchPaths           []types.FilesystemPath
		Home                  types.FilesystemPath
		Prefix                types.FilesystemPath
		BasePrefix            types.FilesystemPath
		UseEnvironment        bool
		UserSiteDirectory     bool
		SafePath              bool
		InstallSignalHandlers bool
		Interactive           bool
		// ParseArgv makes the runtime treat Argv as its own command line.
		ParseArgv bool
		// RunCommand is empty when no startup command is configured.
		RunCommand        string
		OptimizationLevel int
		Argv              []string
	}
)

// String returns "interactive" or "background".
func (v Variant) String() string {
	switch v {
	case VariantInteractive:
		return "interactive"
	case VariantBackground:
		return "background"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// NewRuntimeConfiguration builds the isolated configuration for l. The
// runtime ignores the ambient environment and the per-user site directory,
// resolves paths in safe mode and installs its own signal handlers.
func NewRuntimeConfiguration(l bundle.Layout, naming bundle.Naming, argv []string, variant Variant) RuntimeConfiguration {
	cfg := RuntimeConfiguration{
		SearchPaths:           []types.FilesystemPath{l.ModuleDir, l.PackagesDir, l.BinDir, l.RuntimeArchive},
		Home:                  l.BinDir,
		Prefix:                l.Root,
		BasePrefix:            l.Root,
		UseEnvironment:        false,
		UserSiteDirectory:     false,
		SafePath:              true,
		InstallSignalHandlers: true,
		Argv:                  slices.Clone(argv),
	}
	switch variant {
	case VariantBackground:
		cfg.RunCommand = naming.EntryCommand()
		cfg.OptimizationLevel = BackgroundOptimizationLevel
	default:
		cfg.Interactive = true
		cfg.ParseArgv = true
	}
	return cfg
}

// Apply writes every field into w, stopping at the first refusal.
func (c RuntimeConfiguration) Apply(w ConfigWriter) error {
	ints := []struct {
		field ConfigField
		value int
	}{
		{FieldModuleSearchPathsSet, 1},
		{FieldInteractive, boolInt(c.Interactive)},
		{FieldUserSiteDirectory, boolInt(c.UserSiteDirectory)},
		{FieldUseEnvironment, boolInt(c.UseEnvironment)},
		{FieldSafePath, boolInt(c.SafePath)},
		{FieldInstallSignalHandlers, boolInt(c.InstallSignalHandlers)},
		{FieldOptimizationLevel, c.OptimizationLevel},
		{FieldParseArgv, boolInt(c.ParseArgv)},
	}
	for _, f := range ints {
		if err := w.SetInt(f.field, f.value); err != nil {
			return &RuntimeConfigurationError{Field: f.field, Err: err}
		}
	}

	strs := []struct {
		field ConfigField
		value string
	}{
		{FieldHome, string(c.Home)},
		{FieldPrefix, string(c.Prefix)},
		{FieldBasePrefix, string(c.BasePrefix)},
	}
	for _, f := range strs {
		if err := w.SetString(f.field, f.value); err != nil {
			return &RuntimeConfigurationError{Field: f.field, Err: err}
		}
	}

	for _, p := range c.SearchPaths {
		if err := w.AppendSearchPath(string(p)); err != nil {
			return &RuntimeConfigurationError{Field: FieldModuleSearchPaths, Err: err}
		}
	}

	if c.RunCommand != "" {
		if err := w.SetString(FieldRunCommand, c.RunCommand); err != nil {
			return &RuntimeConfigurationError{Field: FieldRunCommand, Err: err}
		}
	}

	if err := w.SetArgv(c.Argv); err != nil {
		return &RuntimeConfigurationError{Field: FieldArgv, Err: err}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
