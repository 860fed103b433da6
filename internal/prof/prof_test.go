package prof

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func nonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("%s is empty", path)
	}
}

func TestCPUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	if err := StartCPU(path); err != nil {
		t.Fatalf("StartCPU: %v", err)
	}
	if err := StartCPU(path); !errors.Is(err, ErrActive) {
		t.Fatalf("second StartCPU: got %v, want ErrActive", err)
	}
	if err := StopCPU(); err != nil {
		t.Fatalf("StopCPU: %v", err)
	}
	if err := StopCPU(); err != nil {
		t.Fatalf("idle StopCPU: %v", err)
	}
	nonEmpty(t, path)
}

func TestWriteMem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.pprof")
	if err := WriteMem(path); err != nil {
		t.Fatalf("WriteMem: %v", err)
	}
	nonEmpty(t, path)
}

func TestRuntimeTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.trace")
	if err := StartTrace(path); err != nil {
		t.Fatalf("StartTrace: %v", err)
	}
	if err := StopTrace(); err != nil {
		t.Fatalf("StopTrace: %v", err)
	}
	nonEmpty(t, path)
}

func TestMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cpu.pprof")
	if err := StartCPU(path); err == nil {
		_ = StopCPU()
		t.Fatal("expected error for missing directory")
	}
}
