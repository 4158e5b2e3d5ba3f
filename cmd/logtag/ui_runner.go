package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"logtag/internal/driver"
	"logtag/internal/pipeline"
	"logtag/internal/ui"
)

type rewriteOutcome struct {
	results []driver.UnitResult
	err     error
}

func runRewriteWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.UnitResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan rewriteOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		results, err := driver.RewriteFiles(ctx, files, optsCopy)
		outcomeCh <- rewriteOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
