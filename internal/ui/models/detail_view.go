package models

import (
	"fmt"
	"strings"

	"github.com/CharlieGordon/dupfind/internal/report"
	"github.com/CharlieGordon/dupfind/internal/ui/components"
	"github.com/CharlieGordon/dupfind/internal/ui/styles"
	uiutils "github.com/CharlieGordon/dupfind/internal/ui/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// DetailViewModel shows every file in one duplicate group
type DetailViewModel struct {
	group    report.Group
	cursor   int
	offset   int
	pageSize int
	width    int
}

// NewDetailViewModel creates a new detail view model
func NewDetailViewModel(group report.Group, width, height int) *DetailViewModel {
	m := &DetailViewModel{
		group: group,
		width: width,
	}
	m.setPageSize(height)
	return m
}

func (m *DetailViewModel) setPageSize(height int) {
	m.pageSize = uiutils.PageSize(height)
}

// Init initializes the detail view
func (m *DetailViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *DetailViewModel) Update(msg tea.Msg) (*DetailViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.setPageSize(msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset--
				}
			}
		case "down", "j":
			if m.cursor < len(m.group.Files)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset++
				}
			}
		}
	}

	return m, nil
}

// View renders the detail view
func (m *DetailViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("📄 Duplicate Group"))
	b.WriteString("\n\n")

	b.WriteString(styles.DimStyle.Render("Hash: "))
	b.WriteString(styles.DigestStyle.Render(m.group.Digest))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Size: "))
	b.WriteString(styles.FileSizeStyle.Render(humanize.IBytes(uint64(m.group.Size))))
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" each, %d copies", len(m.group.Files))))
	b.WriteString("\n\n")

	end := m.offset + m.pageSize
	if end > len(m.group.Files) {
		end = len(m.group.Files)
	}

	var list strings.Builder
	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("→ ")
		}

		list.WriteString(cursor)
		list.WriteString(styles.FilePathStyle.Render(uiutils.TruncatePath(m.group.Files[i], m.pathWidth())))
		if i < end-1 {
			list.WriteString("\n")
		}
	}
	b.WriteString(styles.PanelStyle.Render(list.String()))
	b.WriteString("\n\n")

	statusBar := components.NewStatusBar()
	statusBar.SetView("Group Files")
	statusBar.SetPosition(m.cursor+1, len(m.group.Files), m.group.Size)
	statusBar.SetShortcuts(map[string]string{
		"↑/↓": "navigate",
		"esc": "back",
		"q":   "quit",
	})
	b.WriteString(statusBar.Render(m.width))

	return b.String()
}

func (m *DetailViewModel) pathWidth() int {
	if m.width <= 20 {
		return 70
	}
	return m.width - 12
}
