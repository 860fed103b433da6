package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tabtidy/internal/prof"
)

var profileCleanup func()

func runProfileCleanup() {
	if profileCleanup != nil {
		profileCleanup()
		profileCleanup = nil
	}
}

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers. The returned cleanup is safe to call twice.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	errw := cmd.ErrOrStderr()
	report := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(errw, "prof: %s: %v\n", what, err)
		}
	}

	stopCPU := func() {}
	stopTrace := func() {}
	writeMem := func() {}

	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		stopCPU = func() { report("cpu profile", prof.StopCPU()) }
	}
	if tracePath != "" {
		if err := prof.StartTrace(tracePath); err != nil {
			stopCPU()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
		stopTrace = func() { report("runtime trace", prof.StopTrace()) }
	}
	if memProfile != "" {
		writeMem = func() { report("heap profile", prof.WriteMem(memProfile)) }
	}

	cleaned := false
	return func() {
		if cleaned {
			return
		}
		cleaned = true
		stopTrace()
		stopCPU()
		writeMem()
	}, nil
}
