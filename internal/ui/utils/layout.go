package utils

import (
	"fmt"
	"path/filepath"

	"github.com/CharlieGordon/dupfind/internal/ui/styles"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 80
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 24
)

// TruncatePath shortens a file path to fit within maxWidth. The base name
// is always kept; the directory part gives way first.
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if maxWidth < 10 {
		return "..."
	}

	_, file := filepath.Split(path)
	if len(file)+4 >= maxWidth {
		// The base name alone fills the width, keep its tail.
		return "..." + path[len(path)-maxWidth+3:]
	}

	head := maxWidth - len(file) - 4
	return path[:head] + ".../" + file
}

// PageSize returns how many list rows fit in a terminal of the given
// height once the title, summary and status bar are accounted for.
func PageSize(terminalHeight int) int {
	const reservedLines = 10

	pageSize := terminalHeight - reservedLines
	if pageSize < 5 {
		pageSize = 5
	}
	return pageSize
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}

// SizeWarningBanner returns a warning banner if the terminal is too
// small, or an empty string.
func SizeWarningBanner(width, height int) string {
	if !IsTerminalTooSmall(width, height) {
		return ""
	}

	warning := "⚠️  Terminal too small! Recommended: 80x24 or larger"
	if width > 0 && height > 0 {
		warning += styles.DimStyle.Render(" (current: ") +
			styles.WarningStyle.Render(fmt.Sprintf("%dx%d", width, height)) +
			styles.DimStyle.Render(")")
	}

	return styles.WarningStyle.Render(warning) + "\n\n"
}
