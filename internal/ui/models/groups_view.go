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

// GroupsViewModel handles browsing the duplicate groups
type GroupsViewModel struct {
	result   *report.Result
	cursor   int
	offset   int
	pageSize int
	width    int
}

// NewGroupsViewModel creates a new groups view model
func NewGroupsViewModel(result *report.Result, width, height int) *GroupsViewModel {
	m := &GroupsViewModel{
		result: result,
		width:  width,
	}
	m.setPageSize(height)
	return m
}

func (m *GroupsViewModel) setPageSize(height int) {
	m.pageSize = uiutils.PageSize(height)
}

// Init initializes the groups view
func (m *GroupsViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *GroupsViewModel) Update(msg tea.Msg) (*GroupsViewModel, tea.Cmd) {
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
			if m.cursor < len(m.result.Groups)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset++
				}
			}
		case "g":
			m.cursor = 0
			m.offset = 0
		case "G":
			if n := len(m.result.Groups); n > 0 {
				m.cursor = n - 1
				m.offset = n - m.pageSize
				if m.offset < 0 {
					m.offset = 0
				}
			}
		case "enter":
			if len(m.result.Groups) > 0 {
				return m, m.chooseGroup()
			}
		}
	}

	return m, nil
}

// View renders the groups view
func (m *GroupsViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🔁 Duplicate Groups"))
	b.WriteString("\n\n")

	stats := m.result.Stats

	if len(m.result.Groups) == 0 {
		b.WriteString(styles.SuccessStyle.Render("✓ No duplicate files found."))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Scanned %s files, hashed %s candidates.\n",
			styles.BoldStyle.Render(fmt.Sprintf("%d", stats.FilesScanned)),
			styles.BoldStyle.Render(fmt.Sprintf("%d", stats.FilesHashed))))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press q to quit"))
		return b.String()
	}

	// Group list
	end := m.offset + m.pageSize
	if end > len(m.result.Groups) {
		end = len(m.result.Groups)
	}

	for i := m.offset; i < end; i++ {
		group := m.result.Groups[i]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("→ ")
		}

		first := uiutils.TruncatePath(group.Files[0], m.pathWidth())

		line := fmt.Sprintf("%s%s × %s  %s  %s",
			cursor,
			styles.BoldStyle.Render(fmt.Sprintf("%d files", len(group.Files))),
			styles.FileSizeStyle.Render(humanize.IBytes(uint64(group.Size))),
			styles.DigestStyle.Render(shortDigest(group.Digest)),
			styles.FilePathStyle.Render(first),
		)

		b.WriteString(line)
		b.WriteString("\n")
	}

	// Summary
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d groups, %d duplicate files, %s wasted",
		stats.DuplicateGroups,
		stats.DuplicateFiles,
		humanize.IBytes(uint64(stats.WastedBytes)))))
	if stats.HashErrors > 0 {
		b.WriteString("\n")
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("⚠ %d files could not be hashed", stats.HashErrors)))
	}
	b.WriteString("\n\n")

	statusBar := components.NewStatusBar()
	statusBar.SetView("Duplicate Groups")
	statusBar.SetPosition(m.cursor+1, len(m.result.Groups), stats.WastedBytes)
	statusBar.SetShortcuts(map[string]string{
		"↑/↓":   "navigate",
		"enter": "view files",
		"?":     "help",
		"q":     "quit",
	})
	b.WriteString(statusBar.Render(m.width))

	return b.String()
}

func (m *GroupsViewModel) pathWidth() int {
	if m.width <= 50 {
		return 40
	}
	return m.width - 45
}

// chooseGroup sends a message to open the detail view
func (m *GroupsViewModel) chooseGroup() tea.Cmd {
	idx := m.cursor
	return func() tea.Msg {
		return GroupChosenMsg{Index: idx}
	}
}

// shortDigest returns an abbreviated digest for list rows
func shortDigest(digest string) string {
	if len(digest) <= 12 {
		return digest
	}
	return digest[:12]
}
