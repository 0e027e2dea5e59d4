// Package progress defines the observer interface the detection pipeline
// reports into, plus the sinks shipped with the CLI.
package progress

// Reporter receives lifecycle events from a scan. The pipeline calls every
// hook unconditionally and ignores the outcome; implementations own their
// own output throttling. Hooks may be invoked from the pipeline's hashing
// phase, whose callbacks are serialized but not bound to one goroutine.
type Reporter interface {
	StartScanning()
	UpdateScanning(count int)
	EndScanning(total int)
	StartHashing(total int)
	UpdateHashing(completed, total int, current string)
	EndHashing()
}

// Noop discards every event. It is the sink for quiet runs and for stderr
// that is not a terminal.
type Noop struct{}

func (Noop) StartScanning()                 {}
func (Noop) UpdateScanning(int)             {}
func (Noop) EndScanning(int)                {}
func (Noop) StartHashing(int)               {}
func (Noop) UpdateHashing(int, int, string) {}
func (Noop) EndHashing()                    {}
