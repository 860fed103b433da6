package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabtidy/internal/ast"
	"tabtidy/internal/driver"
	"tabtidy/internal/version"
)

const messyInput = "*** Test Cases ***\nT\n  Log  x\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	runProfileCleanup()
	runTraceCleanup()
	return out.String(), errOut.String(), err
}

func TestShowProgress(t *testing.T) {
	tests := []struct {
		value  string
		mode   driver.Mode
		format string
		tty    bool
		want   bool
	}{
		{"", driver.ModeWrite, "text", true, true},
		{"AUTO", driver.ModeWrite, "text", false, false},
		{"on", driver.ModeCheck, "text", false, true},
		{" off ", driver.ModeWrite, "text", true, false},
		{"on", driver.ModeStdout, "text", true, false},
		{"on", driver.ModeWrite, "json", true, false},
	}
	for _, tt := range tests {
		got, err := showProgress(tt.value, tt.mode, tt.format, tt.tty)
		if err != nil || got != tt.want {
			t.Errorf("showProgress(%q, %v, %q, %v) = %v, %v", tt.value, tt.mode, tt.format, tt.tty, got, err)
		}
	}
	if _, err := showProgress("sometimes", driver.ModeWrite, "text", true); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]ast.FileKind{"": ast.SuiteFile, "suite": ast.SuiteFile, "resource": ast.ResourceFile, "init": ast.InitFile} {
		got, err := parseKind(in)
		if err != nil || got != want {
			t.Errorf("parseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseKind("library"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTidyCheckCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.robot")
	if err := os.WriteFile(path, []byte(messyInput), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "tidy", "--check", "--no-cache", "--ui", "off", "--color", "off", dir)
	if err == nil || !strings.Contains(err.Error(), "1 file(s) would be reformatted") {
		t.Fatalf("expected check failure, got %v", err)
	}
	if !strings.Contains(out, "would reformat "+path) {
		t.Fatalf("stdout:\n%s", out)
	}
	data, _ := os.ReadFile(path)
	if string(data) != messyInput {
		t.Fatal("--check must not touch files")
	}
}

func TestTidyRejectsStdoutWithCheck(t *testing.T) {
	_, _, err := execute(t, "tidy", "--check", "--stdout", "--no-cache", ".")
	if err == nil || !strings.Contains(err.Error(), "--stdout cannot be used with --check") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRenderTidyJSON(t *testing.T) {
	var buf bytes.Buffer
	results := []driver.FileResult{{Path: "a.robot", Kind: ast.ResourceFile, Changed: true, Formatted: []byte("x\n")}}
	if err := renderTidyJSON(&buf, results, driver.ModeStdout); err != nil {
		t.Fatal(err)
	}
	var payload struct {
		Mode    string `json:"mode"`
		Results []struct {
			Path      string `json:"path"`
			Kind      string `json:"kind"`
			Changed   bool   `json:"changed"`
			Formatted string `json:"formatted"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Mode != "stdout" || len(payload.Results) != 1 {
		t.Fatalf("payload = %+v", payload)
	}
	r := payload.Results[0]
	if r.Path != "a.robot" || r.Kind != "resource" || !r.Changed || r.Formatted != "x\n" {
		t.Fatalf("result = %+v", r)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, version.Info{Version: "1.0.0"}, true); err != nil {
		t.Fatal(err)
	}
	var info version.Info
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "1.0.0" || info.GitCommit != "unknown" || info.BuildDate != "unknown" {
		t.Fatalf("info = %+v", info)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("cpu-profile", "")
		_ = rootCmd.PersistentFlags().Set("mem-profile", "")
	})

	if _, _, err := execute(t, "version", "--cpu-profile", cpu, "--mem-profile", mem); err != nil {
		t.Fatalf("version with profiling: %v", err)
	}
	for _, path := range []string{cpu, mem} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("profile not written: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}
