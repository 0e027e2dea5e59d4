package progress

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages delivered by Forward. The interactive browser's models switch
// on these.
type (
	ScanStartedMsg struct{}
	ScanCountMsg   struct{ Count int }
	ScanDoneMsg    struct{ Total int }
	HashStartedMsg struct{ Total int }

	HashProgressMsg struct {
		Completed int
		Total     int
		Current   string
	}

	HashDoneMsg struct{}
)

// Forward relays progress events into a bubbletea program as messages.
// Per-file events are throttled like the terminal sink so a large tree
// cannot flood the program's queue; lifecycle events always go through.
type Forward struct {
	mu         sync.Mutex
	send       func(tea.Msg)
	lastUpdate time.Time
}

// NewForward returns a Forward delivering through send, typically a
// tea.Program's Send method.
func NewForward(send func(tea.Msg)) *Forward {
	return &Forward{send: send}
}

func (f *Forward) StartScanning() {
	f.send(ScanStartedMsg{})
}

func (f *Forward) UpdateScanning(count int) {
	if f.throttled() {
		return
	}
	f.send(ScanCountMsg{Count: count})
}

func (f *Forward) EndScanning(total int) {
	f.send(ScanDoneMsg{Total: total})
}

func (f *Forward) StartHashing(total int) {
	f.send(HashStartedMsg{Total: total})
}

func (f *Forward) UpdateHashing(completed, total int, current string) {
	if f.throttled() {
		return
	}
	f.send(HashProgressMsg{Completed: completed, Total: total, Current: current})
}

func (f *Forward) EndHashing() {
	f.send(HashDoneMsg{})
}

func (f *Forward) throttled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if now.Sub(f.lastUpdate) < updateInterval {
		return true
	}
	f.lastUpdate = now
	return false
}
