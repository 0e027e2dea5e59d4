// Package output writes finished reports to their destination in the
// selected format.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CharlieGordon/dupfind/internal/report"
	"github.com/dustin/go-humanize"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Writer renders a report.Result to an io.Writer
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new Writer
func New(w io.Writer, format Format) *Writer {
	return &Writer{
		w:      w,
		format: format,
	}
}

// Write renders the result in the configured format
func (wr *Writer) Write(res *report.Result) error {
	switch wr.format {
	case FormatText:
		return wr.writeText(res)
	case FormatJSON:
		return wr.writeJSON(res)
	default:
		return fmt.Errorf("unsupported format: %s", wr.format)
	}
}

// writeText emits the plain-text report exactly as built. No duplicates
// means no output at all, which keeps piped consumers simple.
func (wr *Writer) writeText(res *report.Result) error {
	if res.Report == "" {
		return nil
	}
	_, err := io.WriteString(wr.w, res.Report)
	return err
}

type jsonError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// writeJSON generates a JSON report
func (wr *Writer) writeJSON(res *report.Result) error {
	groups := res.Groups
	if groups == nil {
		groups = []report.Group{}
	}
	errs := make([]jsonError, 0, len(res.Errors))
	for _, he := range res.Errors {
		errs = append(errs, jsonError{Path: he.Path, Error: he.Err.Error()})
	}

	payload := struct {
		Timestamp string           `json:"timestamp"`
		Groups    []report.Group   `json:"groups"`
		Stats     report.ScanStats `json:"stats"`
		Errors    []jsonError      `json:"errors"`
	}{
		Timestamp: time.Now().Format(time.RFC3339),
		Groups:    groups,
		Stats:     res.Stats,
		Errors:    errs,
	}

	encoder := json.NewEncoder(wr.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// SaveToFile saves the report to a file
func SaveToFile(res *report.Result, path string, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return New(file, format).Write(res)
}

// WriteSummary prints a human-readable run summary, meant for stderr so
// it never mixes with a piped report.
func WriteSummary(w io.Writer, res *report.Result) {
	fmt.Fprintf(w, "=== Scan Summary ===\n")
	fmt.Fprintf(w, "Files scanned: %d\n", res.Stats.FilesScanned)
	fmt.Fprintf(w, "Candidates hashed: %d\n", res.Stats.FilesHashed)

	if res.Stats.DuplicateGroups == 0 {
		fmt.Fprintf(w, "No duplicate files found.\n")
	} else {
		fmt.Fprintf(w, "Duplicate groups: %d\n", res.Stats.DuplicateGroups)
		fmt.Fprintf(w, "Duplicate files: %d\n", res.Stats.DuplicateFiles)
		fmt.Fprintf(w, "Wasted space: %s\n", humanize.IBytes(uint64(res.Stats.WastedBytes)))
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(w, "\n%s", report.Summarize(res.Errors))
	}
}
