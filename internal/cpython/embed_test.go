// SPDX-License-Identifier: MPL-2.0

//go:build cpython && cgo

package cpython

import (
	"errors"
	"io"
	"testing"

	"github.com/pybundle/pybundle/internal/runtime"
)

func TestEmbedEngine_ConfigRejectsBeforeLibpython(t *testing.T) {
	e := NewEmbedEngine(io.Discard)
	cfg := e.NewConfig()
	defer cfg.Clear()

	if err := cfg.SetString(runtime.FieldHome, "a\x00b"); !errors.Is(err, ErrInvalidConfigValue) {
		t.Errorf("SetString() = %v, want ErrInvalidConfigValue", err)
	}
	if err := cfg.SetInt(runtime.FieldOptimizationLevel, -1); !errors.Is(err, ErrInvalidConfigValue) {
		t.Errorf("SetInt() = %v, want ErrInvalidConfigValue", err)
	}
	if e.failed {
		t.Error("a value rejected in Go must not record an interpreter status")
	}
}

func TestEmbedEngine_ConfigWrites(t *testing.T) {
	e := NewEmbedEngine(io.Discard)
	cfg := e.NewConfig()

	if err := cfg.SetString(runtime.FieldHome, "/opt/app/bin"); err != nil {
		t.Errorf("SetString() error: %v", err)
	}
	if err := cfg.AppendSearchPath("/opt/app/lib"); err != nil {
		t.Errorf("AppendSearchPath() error: %v", err)
	}
	if err := cfg.SetArgv([]string{"console", "-q"}); err != nil {
		t.Errorf("SetArgv() error: %v", err)
	}
	cfg.Clear()
	if err := cfg.SetInt(runtime.FieldSafePath, 1); !errors.Is(err, ErrConfigReleased) {
		t.Errorf("SetInt() after Clear = %v, want ErrConfigReleased", err)
	}
}
