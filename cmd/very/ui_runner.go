package main

import (
	"bytes"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeanMcLoughlin/very-sub000/internal/driver"
	"github.com/SeanMcLoughlin/very-sub000/internal/ui"
)

// runBatchWithUI runs the batch behind a progress display. Driver output is
// buffered and replayed once the program exits so diagnostics do not fight
// the TUI for the terminal.
func runBatchWithUI(cfg driver.Config, files []string) error {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan error, 1)
	var stdout, stderr bytes.Buffer

	go func() {
		cfg.Progress = driver.ChannelSink{Ch: events}
		cfg.Stdout = &stdout
		cfg.Stderr = &stderr
		outcomeCh <- driver.Run(cfg, files)
		close(events)
	}()

	model := ui.NewProgressModel("very parse", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh

	os.Stdout.Write(stdout.Bytes())
	os.Stderr.Write(stderr.Bytes())
	if uiErr != nil {
		return uiErr
	}
	return outcome
}
