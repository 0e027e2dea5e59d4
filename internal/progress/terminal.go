package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// updateInterval caps visible rewrites at roughly 10 per second.
const updateInterval = 100 * time.Millisecond

// Terminal renders a single status line rewritten in place, meant for an
// interactive stderr. Count updates are throttled; lifecycle events always
// render, so final totals are never swallowed by the throttle.
type Terminal struct {
	mu         sync.Mutex
	w          io.Writer
	width      int
	lastUpdate time.Time
}

// NewTerminal returns a Terminal writing to w. When w is a real terminal
// its width bounds the status line; otherwise 80 columns are assumed.
func NewTerminal(w io.Writer) *Terminal {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	return &Terminal{w: w, width: width}
}

func (t *Terminal) StartScanning() {
	t.rewrite("scanning...", true)
}

func (t *Terminal) UpdateScanning(count int) {
	t.rewrite(fmt.Sprintf("scanning... %d files found", count), false)
}

func (t *Terminal) EndScanning(total int) {
	t.finishLine(fmt.Sprintf("scanned %d files", total))
}

func (t *Terminal) StartHashing(total int) {
	t.rewrite(fmt.Sprintf("hashing 0/%d", total), true)
}

func (t *Terminal) UpdateHashing(completed, total int, current string) {
	line := fmt.Sprintf("hashing %d/%d", completed, total)
	if current != "" && t.width > len(line)+8 {
		line += "  " + tail(current, t.width-len(line)-3)
	}
	t.rewrite(line, false)
}

func (t *Terminal) EndHashing() {
	t.finishLine("hashing complete")
}

// rewrite clears the status line and redraws it. Unforced updates inside
// the throttle window are dropped.
func (t *Terminal) rewrite(line string, force bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if !force && now.Sub(t.lastUpdate) < updateInterval {
		return
	}
	t.lastUpdate = now

	fmt.Fprintf(t.w, "\r\033[2K%s", truncate(line, t.width-1))
}

// finishLine draws the final text for a phase and moves to the next line,
// leaving it on screen. Resets the throttle so the next phase renders
// immediately.
func (t *Terminal) finishLine(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastUpdate = time.Time{}
	fmt.Fprintf(t.w, "\r\033[2K%s\n", truncate(line, t.width-1))
}

// truncate cuts the end of a line that would wrap.
func truncate(s string, width int) string {
	if width < 4 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// tail keeps the end of a path, which carries the informative part.
func tail(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
