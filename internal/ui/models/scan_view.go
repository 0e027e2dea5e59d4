package models

import (
	"fmt"
	"strings"
	"time"

	events "github.com/CharlieGordon/dupfind/internal/progress"
	"github.com/CharlieGordon/dupfind/internal/ui/styles"
	uiutils "github.com/CharlieGordon/dupfind/internal/ui/utils"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// scanPhase tracks which stage of the pipeline is running
type scanPhase int

const (
	phaseWalking scanPhase = iota
	phaseHashing
	phaseDone
)

// ScanViewModel handles the scanning progress view
type ScanViewModel struct {
	root      string
	spinner   spinner.Model
	bar       progress.Model
	phase     scanPhase
	seen      int
	hashDone  int
	hashTotal int
	current   string
	startTime time.Time
	width     int
	height    int
}

// NewScanViewModel creates a new scan view model
func NewScanViewModel(root string, width, height int) *ScanViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	p := progress.New(progress.WithDefaultGradient())

	return &ScanViewModel{
		root:      root,
		spinner:   s,
		bar:       p,
		phase:     phaseWalking,
		startTime: time.Now(),
		width:     width,
		height:    height,
	}
}

// Init initializes the scan view
func (m *ScanViewModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *ScanViewModel) Update(msg tea.Msg) (*ScanViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.bar.Width = barWidth
		}
		return m, nil

	case events.ScanStartedMsg:
		m.phase = phaseWalking
		return m, nil

	case events.ScanCountMsg:
		m.seen = msg.Count
		return m, nil

	case events.ScanDoneMsg:
		m.seen = msg.Total
		return m, nil

	case events.HashStartedMsg:
		m.phase = phaseHashing
		m.hashTotal = msg.Total
		return m, nil

	case events.HashProgressMsg:
		m.hashDone = msg.Completed
		m.hashTotal = msg.Total
		m.current = msg.Current
		return m, nil

	case events.HashDoneMsg:
		m.phase = phaseDone
		return m, nil
	}

	return m, nil
}

// View renders the scan view
func (m *ScanViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🔍 Scanning for Duplicates"))
	b.WriteString("\n\n")

	b.WriteString(styles.DimStyle.Render("Root: "))
	b.WriteString(styles.FilePathStyle.Render(uiutils.TruncatePath(m.root, m.lineWidth())))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseWalking:
		b.WriteString(m.spinner.View())
		b.WriteString(" Walking directory tree... ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Files seen: %s\n", styles.BoldStyle.Render(fmt.Sprintf("%d", m.seen))))

	case phaseHashing:
		b.WriteString(m.spinner.View())
		b.WriteString(" Hashing candidates... ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
		b.WriteString("\n\n")

		if m.hashTotal > 0 {
			percent := float64(m.hashDone) / float64(m.hashTotal)
			b.WriteString(m.bar.ViewAs(percent))
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("Progress: %d/%d files\n", m.hashDone, m.hashTotal))

		if m.current != "" {
			b.WriteString(styles.DimStyle.Render("Current: "))
			b.WriteString(styles.FilePathStyle.Render(uiutils.TruncatePath(m.current, m.lineWidth())))
			b.WriteString("\n")
		}

	case phaseDone:
		b.WriteString(styles.SuccessStyle.Render("✓ Scan Complete!"))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Opening results..."))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Press ctrl+c to cancel"))

	return b.String()
}

func (m *ScanViewModel) lineWidth() int {
	if m.width <= 20 {
		return 60
	}
	return m.width - 12
}
