package ui

import (
	"errors"
	"strings"
	"testing"

	"tabtidy/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("tidy", []string{"a.robot", "b.robot"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.robot", Stage: driver.StageLex, Status: driver.StatusWorking})
	if m.items[0].status != "lexing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.15 {
		t.Fatalf("percent = %v, want 0.15", got)
	}

	m.applyEvent(driver.Event{File: "a.robot", Stage: driver.StageTidy, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.robot", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("boom")})
	m.applyEvent(driver.Event{File: "unknown.robot", Stage: driver.StageLex, Status: driver.StatusWorking})
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v, want 1", got)
	}

	view := m.View()
	if !strings.Contains(view, "done") || !strings.Contains(view, "error") || !strings.Contains(view, "b.robot") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestProgressModelQuitsOnClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("tidy", []string{"a.robot"}, events).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatal("model must finish when events close")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a/very/long/path.robot", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"日本語ファイル", 8, "日本..."},
		{"x", 0, "x"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
