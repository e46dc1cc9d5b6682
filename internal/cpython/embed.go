// SPDX-License-Identifier: MPL-2.0

//go:build cpython && cgo

package cpython

/*
#cgo pkg-config: python3-embed
#define PY_SSIZE_T_CLEAN
#include <Python.h>
#include <stdlib.h>

enum {
	PB_HOME,
	PB_PREFIX,
	PB_BASE_PREFIX,
	PB_RUN_COMMAND,
};

enum {
	PB_SEARCH_PATHS_SET,
	PB_INTERACTIVE,
	PB_USER_SITE,
	PB_USE_ENVIRONMENT,
	PB_SAFE_PATH,
	PB_SIGNAL_HANDLERS,
	PB_OPTIMIZATION,
	PB_PARSE_ARGV,
};

static wchar_t **pb_string_field(PyConfig *cfg, int which) {
	switch (which) {
	case PB_HOME: return &cfg->home;
	case PB_PREFIX: return &cfg->prefix;
	case PB_BASE_PREFIX: return &cfg->base_prefix;
	case PB_RUN_COMMAND: return &cfg->run_command;
	}
	return NULL;
}

static int *pb_int_field(PyConfig *cfg, int which) {
	switch (which) {
	case PB_SEARCH_PATHS_SET: return &cfg->module_search_paths_set;
	case PB_INTERACTIVE: return &cfg->interactive;
	case PB_USER_SITE: return &cfg->user_site_directory;
	case PB_USE_ENVIRONMENT: return &cfg->use_environment;
	case PB_SAFE_PATH: return &cfg->safe_path;
	case PB_SIGNAL_HANDLERS: return &cfg->install_signal_handlers;
	case PB_OPTIMIZATION: return &cfg->optimization_level;
	case PB_PARSE_ARGV: return &cfg->parse_argv;
	}
	return NULL;
}

static PyStatus pb_append_search_path(PyConfig *cfg, const char *path) {
	wchar_t *wide = Py_DecodeLocale(path, NULL);
	if (wide == NULL) {
		return PyStatus_NoMemory();
	}
	PyStatus st = PyWideStringList_Append(&cfg->module_search_paths, wide);
	PyMem_RawFree(wide);
	return st;
}

static int pb_failed(PyStatus st) { return PyStatus_Exception(st); }

static const char *pb_message(PyStatus st) { return st.err_msg; }
*/
import "C"

import (
	"errors"
	"fmt"
	"io"
	"os"
	goruntime "runtime"
	"unsafe"

	"github.com/pybundle/pybundle/internal/runtime"
)

var (
	stringFieldIDs = map[runtime.ConfigField]C.int{
		runtime.FieldHome:       C.PB_HOME,
		runtime.FieldPrefix:     C.PB_PREFIX,
		runtime.FieldBasePrefix: C.PB_BASE_PREFIX,
		runtime.FieldRunCommand: C.PB_RUN_COMMAND,
	}

	intFieldIDs = map[runtime.ConfigField]C.int{
		runtime.FieldModuleSearchPathsSet:  C.PB_SEARCH_PATHS_SET,
		runtime.FieldInteractive:           C.PB_INTERACTIVE,
		runtime.FieldUserSiteDirectory:     C.PB_USER_SITE,
		runtime.FieldUseEnvironment:        C.PB_USE_ENVIRONMENT,
		runtime.FieldSafePath:              C.PB_SAFE_PATH,
		runtime.FieldInstallSignalHandlers: C.PB_SIGNAL_HANDLERS,
		runtime.FieldOptimizationLevel:     C.PB_OPTIMIZATION,
		runtime.FieldParseArgv:             C.PB_PARSE_ARGV,
	}
)

// The interpreter installs its signal handlers and runs its main loop on the
// thread that initialized it, which must be the process's main thread.
func init() {
	goruntime.LockOSThread()
}

type (
	// EmbedEngine drives libpython in-process.
	EmbedEngine struct {
		stderr io.Writer
		// status is the last failing status, kept for ExitStatusException.
		status C.PyStatus
		failed bool
	}

	// embedConfig owns a C-allocated PyConfig until Clear.
	embedConfig struct {
		engine *EmbedEngine
		cfg    *C.PyConfig
	}
)

// NewEmbedEngine returns the libpython engine. Diagnostics that do not come
// from the interpreter itself go to stderr.
func NewEmbedEngine(stderr io.Writer) *EmbedEngine {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &EmbedEngine{stderr: stderr}
}

// NewConfig implements runtime.Interpreter.
func (e *EmbedEngine) NewConfig() runtime.ConfigWriter {
	cfg := (*C.PyConfig)(C.calloc(1, C.sizeof_PyConfig))
	C.PyConfig_InitIsolatedConfig(cfg)
	return &embedConfig{engine: e, cfg: cfg}
}

// Initialize implements runtime.Interpreter.
func (e *EmbedEngine) Initialize(cfg runtime.ConfigWriter) error {
	c, ok := cfg.(*embedConfig)
	if !ok {
		return fmt.Errorf("configuration %T was not created by this engine", cfg)
	}
	if c.cfg == nil {
		return ErrConfigReleased
	}
	return e.check(C.Py_InitializeFromConfig(c.cfg))
}

// RunMain implements runtime.Interpreter.
func (e *EmbedEngine) RunMain() int {
	return int(C.Py_RunMain())
}

// ExitStatusException hands the last failing status to the interpreter's
// fatal-exit facility. Errors raised before reaching libpython are printed
// first and exit with status 1. It never returns.
func (e *EmbedEngine) ExitStatusException(err error) {
	if e.failed {
		C.Py_ExitStatusException(e.status)
	}
	fmt.Fprintf(e.stderr, "Fatal Python error: %v\n", err)
	C.Py_ExitStatusException(C.PyStatus_Exit(1))
}

func (e *EmbedEngine) check(st C.PyStatus) error {
	if C.pb_failed(st) == 0 {
		return nil
	}
	e.status = st
	e.failed = true
	if msg := C.pb_message(st); msg != nil {
		return errors.New(C.GoString(msg))
	}
	return errors.New("unknown interpreter error")
}

func (c *embedConfig) SetString(field runtime.ConfigField, value string) error {
	if c.cfg == nil {
		return ErrConfigReleased
	}
	if err := checkString(field, value); err != nil {
		return err
	}
	cs := C.CString(value)
	defer C.free(unsafe.Pointer(cs))
	return c.engine.check(C.PyConfig_SetBytesString(c.cfg, C.pb_string_field(c.cfg, stringFieldIDs[field]), cs))
}

func (c *embedConfig) SetInt(field runtime.ConfigField, value int) error {
	if c.cfg == nil {
		return ErrConfigReleased
	}
	if err := checkInt(field, value); err != nil {
		return err
	}
	*C.pb_int_field(c.cfg, intFieldIDs[field]) = C.int(value)
	return nil
}

func (c *embedConfig) AppendSearchPath(path string) error {
	if c.cfg == nil {
		return ErrConfigReleased
	}
	if err := checkSearchPath(path); err != nil {
		return err
	}
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return c.engine.check(C.pb_append_search_path(c.cfg, cs))
}

// SetArgv copies argv into a transient C array that is freed as soon as the
// interpreter has decoded it.
func (c *embedConfig) SetArgv(argv []string) error {
	if c.cfg == nil {
		return ErrConfigReleased
	}
	if err := checkArgv(argv); err != nil {
		return err
	}
	if len(argv) == 0 {
		return c.engine.check(C.PyConfig_SetBytesArgv(c.cfg, 0, nil))
	}

	buf := C.malloc(C.size_t(len(argv)) * C.size_t(unsafe.Sizeof((*C.char)(nil))))
	defer C.free(buf)
	cargs := unsafe.Slice((**C.char)(buf), len(argv))
	for i, a := range argv {
		cargs[i] = C.CString(a)
	}
	defer func() {
		for _, p := range cargs {
			C.free(unsafe.Pointer(p))
		}
	}()
	return c.engine.check(C.PyConfig_SetBytesArgv(c.cfg, C.Py_ssize_t(len(argv)), (**C.char)(buf)))
}

func (c *embedConfig) Clear() {
	if c.cfg == nil {
		return
	}
	C.PyConfig_Clear(c.cfg)
	C.free(unsafe.Pointer(c.cfg))
	c.cfg = nil
}
