package components

import (
	"fmt"
	"strings"

	"github.com/CharlieGordon/dupfind/internal/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// StatusBar is the single-line bar rendered at the bottom of list views
type StatusBar struct {
	viewName  string
	position  int
	total     int
	size      int64
	shortcuts map[string]string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{
		shortcuts: make(map[string]string),
	}
}

// SetView sets the current view name
func (s *StatusBar) SetView(viewName string) {
	s.viewName = viewName
}

// SetPosition sets the cursor position, item total, and the byte size
// shown alongside them
func (s *StatusBar) SetPosition(position, total int, size int64) {
	s.position = position
	s.total = total
	s.size = size
}

// SetShortcuts sets the shortcuts to display
func (s *StatusBar) SetShortcuts(shortcuts map[string]string) {
	s.shortcuts = shortcuts
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	var parts []string

	if s.viewName != "" {
		parts = append(parts, styles.BoldStyle.Render(s.viewName))
	}

	if s.total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.position, s.total))
	}

	if s.size > 0 {
		parts = append(parts, styles.FileSizeStyle.Render(humanize.IBytes(uint64(s.size))))
	}

	leftSide := strings.Join(parts, " • ")

	// Shortcuts (right side), ordered keys first
	var shortcutKeys []string
	orderedKeys := []string{"↑/↓", "g/G", "enter", "esc", "?", "q"}

	for _, key := range orderedKeys {
		if _, ok := s.shortcuts[key]; ok {
			shortcutKeys = append(shortcutKeys, key)
		}
	}

	// Add any remaining shortcuts not in the ordered list
	for key := range s.shortcuts {
		found := false
		for _, orderedKey := range orderedKeys {
			if key == orderedKey {
				found = true
				break
			}
		}
		if !found {
			shortcutKeys = append(shortcutKeys, key)
		}
	}

	styledParts := make([]string, 0, len(shortcutKeys))
	plainParts := make([]string, 0, len(shortcutKeys))
	for _, key := range shortcutKeys {
		styledParts = append(styledParts, fmt.Sprintf("%s:%s",
			styles.DimStyle.Render(key), s.shortcuts[key]))
		plainParts = append(plainParts, fmt.Sprintf("%s:%s", key, s.shortcuts[key]))
	}

	rightSide := strings.Join(styledParts, " ")

	leftLen := lipgloss.Width(leftSide)
	spacing := width - leftLen - lipgloss.Width(rightSide) - 2 // -2 for padding

	if spacing < 1 {
		// Not enough space. The truncation works on the plain text: a
		// byte slice of the styled string would cut escape sequences
		// and multi-byte keys like "↑/↓" in half.
		maxRightLen := width - leftLen - 5
		if maxRightLen >= 4 {
			rightSide = styles.DimStyle.Render(
				truncateShortcuts(strings.Join(plainParts, " "), maxRightLen))
		} else {
			rightSide = ""
		}
		spacing = 1
	}

	statusLine := leftSide + strings.Repeat(" ", spacing) + rightSide

	return styles.StatusBarStyle.Width(width).Render(statusLine)
}

// truncateShortcuts cuts shortcut text down to max columns, slicing by
// rune so a key is never split mid-character.
func truncateShortcuts(s string, max int) string {
	runes := []rune(s)
	if max < 4 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
