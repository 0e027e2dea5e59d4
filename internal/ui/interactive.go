// Package ui implements the interactive duplicate browser.
package ui

import (
	"fmt"

	"github.com/CharlieGordon/dupfind/internal/progress"
	"github.com/CharlieGordon/dupfind/internal/report"
	"github.com/CharlieGordon/dupfind/internal/ui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// RunInteractive scans opts.Root and opens the duplicate browser on the
// result. It blocks until the user quits.
func RunInteractive(opts report.Options) error {
	m := models.NewAppModel(opts.Root)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// The scan runs beside the program and feeds it events; Send is safe
	// to call before Run starts consuming.
	go func() {
		opts := opts
		opts.Progress = progress.NewForward(p.Send)
		res := report.Build(opts)
		p.Send(models.ScanFinishedMsg{Result: res})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running interactive mode: %w", err)
	}

	return nil
}
