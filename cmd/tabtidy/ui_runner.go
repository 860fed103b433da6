package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tabtidy/internal/driver"
	"tabtidy/internal/source"
	"tabtidy/internal/ui"
)

type tidyOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// showProgress resolves --ui for a tidy run over files. The progress view
// only makes sense when files are rewritten or checked and the report is
// text; "auto" also requires stdout to be a terminal.
func showProgress(value string, mode driver.Mode, format string, tty bool) (bool, error) {
	var want bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		want = tty
	case "on":
		want = true
	case "off":
		want = false
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return want && mode != driver.ModeStdout && format == "text", nil
}

// runTidyWithUI runs TidyPaths in the background while the progress view
// consumes its events.
func runTidyWithUI(ctx context.Context, title string, files []string, opts driver.TidyOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tidyOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.TidyPaths(ctx, files, optsCopy)
		outcomeCh <- tidyOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если UI завершился раньше, не блокируем отправителя
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
