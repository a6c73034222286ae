package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned when the user quits the progress view before the
// pipeline reported completion. The pipeline goroutine may still be running;
// the caller must not report success.
var ErrCanceled = errors.New("export canceled")

// RunExportTUI wraps the export pipeline with a Bubble Tea TUI.
// exportFn runs the pipeline, sending phase updates on the channel; its
// return value is the path the output was written to.
func RunExportTUI(
	exportFn func(ch chan<- tea.Msg) (string, error),
	projectName, networkID string,
) error {
	m := NewExportModel(projectName, networkID)

	p := tea.NewProgram(m)

	go func() {
		ch := make(chan tea.Msg, 16)
		go func() {
			defer close(ch)
			out, err := exportFn(ch)
			if err != nil {
				ch <- ErrMsg{Err: err}
				return
			}
			ch <- DoneMsg{OutputPath: out}
		}()

		for msg := range ch {
			p.Send(msg)
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return finalModel.(Model).Outcome()
}
