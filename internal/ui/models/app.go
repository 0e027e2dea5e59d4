package models

import (
	"fmt"
	"strings"

	"github.com/CharlieGordon/dupfind/internal/report"
	"github.com/CharlieGordon/dupfind/internal/ui/styles"
	uiutils "github.com/CharlieGordon/dupfind/internal/ui/utils"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the app
type ViewState int

const (
	ViewScanning ViewState = iota
	ViewGroups
	ViewDetail
	ViewHelp
)

// AppModel is the root model for the interactive TUI
type AppModel struct {
	// Current state
	state         ViewState
	previousState ViewState // For back navigation

	// Shared data
	result *report.Result

	// View models
	scanView   *ScanViewModel
	groupsView *GroupsViewModel
	detailView *DetailViewModel

	// UI state
	width  int
	height int
	err    error
}

// NewAppModel creates a new app model
func NewAppModel(root string) *AppModel {
	return &AppModel{
		state:    ViewScanning,
		scanView: NewScanViewModel(root, 0, 0),
	}
}

// Init initializes the model
func (m *AppModel) Init() tea.Cmd {
	// The scan itself runs outside the program and reports back through
	// forwarded progress messages, so only the spinner needs starting.
	return m.scanView.Init()
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			if m.state != ViewHelp {
				m.previousState = m.state
				m.state = ViewHelp
			}
			return m, nil
		case "esc":
			// Handle back navigation
			switch m.state {
			case ViewHelp:
				m.state = m.previousState
				return m, nil
			case ViewDetail:
				m.state = ViewGroups
				return m, nil
			}
		default:
			if m.state == ViewHelp {
				m.state = m.previousState
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ScanFinishedMsg:
		// Scan complete, move to the group browser
		m.result = msg.Result
		m.groupsView = NewGroupsViewModel(m.result, m.width, m.height)
		m.state = ViewGroups
		return m, nil

	case GroupChosenMsg:
		if m.result != nil && msg.Index >= 0 && msg.Index < len(m.result.Groups) {
			m.detailView = NewDetailViewModel(m.result.Groups[msg.Index], m.width, m.height)
			m.state = ViewDetail
		}
		return m, nil
	}

	// Delegate to current view
	return m.delegateUpdate(msg)
}

// delegateUpdate delegates the update to the current view
func (m *AppModel) delegateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case ViewScanning:
		if m.scanView != nil {
			m.scanView, cmd = m.scanView.Update(msg)
		}
	case ViewGroups:
		if m.groupsView != nil {
			m.groupsView, cmd = m.groupsView.Update(msg)
		}
	case ViewDetail:
		if m.detailView != nil {
			m.detailView, cmd = m.detailView.Update(msg)
		}
	}

	return m, cmd
}

// View renders the current view
func (m *AppModel) View() string {
	if m.err != nil {
		return styles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\nPress q to quit."
	}

	// Skip the banner until the first WindowSizeMsg reports a real size.
	banner := ""
	if m.width > 0 {
		banner = uiutils.SizeWarningBanner(m.width, m.height)
	}

	switch m.state {
	case ViewScanning:
		if m.scanView != nil {
			return banner + m.scanView.View()
		}
	case ViewGroups:
		if m.groupsView != nil {
			return banner + m.groupsView.View()
		}
	case ViewDetail:
		if m.detailView != nil {
			return banner + m.detailView.View()
		}
	case ViewHelp:
		return m.renderHelp()
	}

	return "Loading..."
}

// renderHelp renders the help view with context-aware content
func (m *AppModel) renderHelp() string {
	var b strings.Builder

	var viewName string
	var helpContent string

	switch m.previousState {
	case ViewScanning:
		viewName = "Scan View"
		helpContent = m.getHelpForScan()
	case ViewGroups:
		viewName = "Group Browser"
		helpContent = m.getHelpForGroups()
	case ViewDetail:
		viewName = "Group Detail"
		helpContent = m.getHelpForDetail()
	default:
		viewName = "General"
		helpContent = m.getHelpForGeneral()
	}

	title := fmt.Sprintf("Help - %s", viewName)
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(helpContent)

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Press any key to close"))

	return b.String()
}

func (m *AppModel) getHelpForScan() string {
	return `Scanning the directory tree for files with identical content.

Actions:
  ctrl+c  - Cancel scan and exit
  q       - Cancel scan and exit

The browser opens automatically when the scan completes.`
}

func (m *AppModel) getHelpForGroups() string {
	return `Browse the duplicate groups the scan found.

Navigation:
  ↑/k     - Move up
  ↓/j     - Move down
  g       - Go to top
  G       - Go to bottom

Actions:
  enter   - Show the files in this group
  ?       - Toggle help
  q       - Quit`
}

func (m *AppModel) getHelpForDetail() string {
	return `All files in the selected group share the same content hash.

Navigation:
  ↑/k     - Move up
  ↓/j     - Move down

Actions:
  esc     - Back to the group list
  q       - Quit`
}

func (m *AppModel) getHelpForGeneral() string {
	return `dupfind - Interactive Mode Help

Global Shortcuts:
  ?       - Toggle this help
  esc     - Go back / Close help
  q       - Quit
  ctrl+c  - Force quit

This interactive mode guides you through:
  1. Scanning - Find files with identical content
  2. Group Browser - Review each set of duplicates
  3. Group Detail - Inspect the file paths in a set

Press ? at any time to see context-specific help.`
}

// Custom messages
type ScanFinishedMsg struct {
	Result *report.Result
}

type GroupChosenMsg struct {
	Index int
}
