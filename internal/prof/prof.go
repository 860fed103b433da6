// Package prof wraps runtime/pprof and runtime/trace for the CLI profiling flags.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
)

// ErrActive is returned when a profile of the same kind is already running.
var ErrActive = errors.New("prof: already active")

var (
	mu        sync.Mutex
	cpuFile   *os.File
	traceFile *os.File
)

// StartCPU enables CPU profiling and writes samples to path.
func StartCPU(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if cpuFile != nil {
		return ErrActive
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	cpuFile = f
	return nil
}

// StopCPU stops an active CPU profile and closes its file. No-op when idle.
func StopCPU() error {
	mu.Lock()
	defer mu.Unlock()
	if cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := cpuFile.Close()
	cpuFile = nil
	return err
}

// WriteMem runs a GC and writes a heap profile to path.
func WriteMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

// StartTrace writes runtime trace data to path.
func StartTrace(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if traceFile != nil {
		return ErrActive
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return err
	}
	traceFile = f
	return nil
}

// StopTrace ends an active runtime trace and closes its file.
func StopTrace() error {
	mu.Lock()
	defer mu.Unlock()
	if traceFile == nil {
		return nil
	}
	trace.Stop()
	err := traceFile.Close()
	traceFile = nil
	return err
}
