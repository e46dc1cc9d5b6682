// SPDX-License-Identifier: MPL-2.0

package bundletest

import (
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pybundle/pybundle/internal/bundle"
	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

type (
	// Env is an in-memory platform.Environment.
	Env struct {
		mu          sync.Mutex
		vars        map[string]string
		LibraryDirs []types.FilesystemPath
		// Fail makes Setenv of the named key (or RegisterLibraryDir when the
		// key is "library") return the mapped error.
		Fail   map[string]error
		Writes int
	}

	// Self is a fixed platform.SelfLocator.
	Self struct {
		Path types.FilesystemPath
		Err  error
	}

	// Spawner records spawn requests and hands out Process fakes.
	Spawner struct {
		mu       sync.Mutex
		Specs    []platform.SpawnSpec
		ExitCode int
		Err      error
		WaitErr  error
		Signals  []os.Signal
		released int
		spawned  int
	}

	// Process is the fake child returned by Spawner.
	Process struct {
		owner    *Spawner
		released bool
	}

	// Alerter records every alert.
	Alerter struct {
		mu     sync.Mutex
		Alerts []string
	}

	// Tree is a synthetic filesystem for Checker.Stat.
	Tree struct {
		entries map[string]bundle.MemberKind
	}

	fileInfo struct {
		name string
		kind bundle.MemberKind
	}
)

// NewEnv returns an Env seeded with vars.
func NewEnv(vars map[string]string) *Env {
	e := &Env{vars: map[string]string{}, Fail: map[string]error{}}
	maps.Copy(e.vars, vars)
	return e
}

func (e *Env) LookupEnv(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.vars[key]
	return v, ok
}

func (e *Env) Setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.Fail[key]; err != nil {
		return err
	}
	e.Writes++
	e.vars[key] = value
	return nil
}

func (e *Env) Unsetenv(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.vars, key)
	return nil
}

func (e *Env) RegisterLibraryDir(dir types.FilesystemPath) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.Fail["library"]; err != nil {
		return err
	}
	e.LibraryDirs = append(e.LibraryDirs, dir)
	return nil
}

// Snapshot returns a copy of the current variables.
func (e *Env) Snapshot() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.vars)
}

func (s Self) Executable() (types.FilesystemPath, error) { return s.Path, s.Err }

func (s *Spawner) Spawn(spec platform.SpawnSpec) (platform.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Specs = append(s.Specs, spec)
	if s.Err != nil {
		return nil, s.Err
	}
	s.spawned++
	return &Process{owner: s}, nil
}

// Calls returns the number of Spawn requests, failed ones included.
func (s *Spawner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Specs)
}

// Outstanding returns the number of spawned processes not yet released.
func (s *Spawner) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawned - s.released
}

func (p *Process) Wait() (int, error) {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	return p.owner.ExitCode, p.owner.WaitErr
}

func (p *Process) Signal(sig os.Signal) error {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	if p.released {
		return os.ErrProcessDone
	}
	p.owner.Signals = append(p.owner.Signals, sig)
	return nil
}

func (p *Process) Release() error {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	if !p.released {
		p.released = true
		p.owner.released++
	}
	return nil
}

func (a *Alerter) Alert(title, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Alerts = append(a.Alerts, title+": "+message)
}

// Count returns the number of alerts raised.
func (a *Alerter) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Alerts)
}

// NewTree returns a Tree holding every member of l.
func NewTree(l bundle.Layout) *Tree {
	t := &Tree{entries: map[string]bundle.MemberKind{}}
	for _, m := range l.Members() {
		t.entries[string(m.Path)] = m.Kind
	}
	return t
}

// Remove deletes path from the tree.
func (t *Tree) Remove(path types.FilesystemPath) *Tree {
	delete(t.entries, string(path))
	return t
}

// Replace changes the kind of path.
func (t *Tree) Replace(path types.FilesystemPath, kind bundle.MemberKind) *Tree {
	t.entries[string(path)] = kind
	return t
}

// Stat implements platform.StatFunc over the tree.
func (t *Tree) Stat(name string) (fs.FileInfo, error) {
	kind, ok := t.entries[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: filepath.Base(name), kind: kind}, nil
}

func (fi fileInfo) Name() string { return fi.name }
func (fi fileInfo) Size() int64  { return 0 }
func (fi fileInfo) Mode() fs.FileMode {
	if fi.kind == bundle.KindDirectory {
		return fs.ModeDir | 0o755
	}
	return 0o755
}
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return fi.kind == bundle.KindDirectory }
func (fi fileInfo) Sys() any           { return nil }
