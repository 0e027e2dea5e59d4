// Package report builds the duplicate-file report: it drives the size
// index, hashes candidates with bounded concurrency, groups matches by
// digest, and renders the result.
package report

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/CharlieGordon/dupfind/internal/digest"
	"github.com/CharlieGordon/dupfind/internal/logger"
	"github.com/CharlieGordon/dupfind/internal/parallel"
	"github.com/CharlieGordon/dupfind/internal/progress"
	"github.com/CharlieGordon/dupfind/internal/scanner"
)

// Options configure one report run. Root must already satisfy
// scanner.ValidateRoot and be absolute; ExcludePath, when set, must be
// absolute too.
type Options struct {
	Root        string
	ExcludePath string

	// ExcludeGlobs skip any file whose relative path has a segment
	// matching one of these patterns.
	ExcludeGlobs []string

	// Extensions is a normalized allow-list from
	// scanner.NormalizeExtensions. Nil scans every file.
	Extensions map[string]struct{}

	// MinSize drops candidate buckets below this byte size. 0 keeps all.
	MinSize int64

	// Progress receives lifecycle events. Nil means silent.
	Progress progress.Reporter
}

// ScanStats summarizes one run.
type ScanStats struct {
	FilesScanned    int   `json:"filesScanned"`
	FilesHashed     int   `json:"filesHashed"`
	HashErrors      int   `json:"hashErrors"`
	DuplicateGroups int   `json:"duplicateGroups"`
	DuplicateFiles  int   `json:"duplicateFiles"`
	WastedBytes     int64 `json:"wastedBytes"`
}

// Group is one set of files with identical content. Size is the byte size
// shared by every member, 0 when the post-hash stat failed.
type Group struct {
	Digest string   `json:"hash"`
	Files  []string `json:"files"`
	Size   int64    `json:"size"`
}

// Result is what Build returns. Report is the plain-text rendering;
// Groups carries the same duplicate sets in structured form for the JSON
// writer and the interactive browser. An empty Report means no duplicates
// were found, as opposed to a run that could not start.
type Result struct {
	Report string
	Groups []Group
	Errors []HashError
	Stats  ScanStats
}

// workerCount bounds hashing concurrency: enough workers to overlap I/O
// with hashing, capped so a huge candidate list cannot swamp the machine.
func workerCount() int {
	n := runtime.NumCPU()
	if n < 2 {
		n = 2
	}
	if n > 8 {
		n = 8
	}
	return n
}

// Build runs the detection pipeline over opts.Root: size collection,
// candidate hashing, digest grouping, statistics, text rendering. Per-file
// failures are logged, recorded in Errors, and never abort the run.
func Build(opts Options) *Result {
	log := logger.Get()

	p := opts.Progress
	if p == nil {
		p = progress.Noop{}
	}

	index := scanner.CollectSizeGroups(scanner.ScanOptions{
		Root:         opts.Root,
		ExcludePath:  opts.ExcludePath,
		ExcludeGlobs: opts.ExcludeGlobs,
		Extensions:   opts.Extensions,
		Progress:     p,
	})

	res := &Result{}
	res.Stats.FilesScanned = index.Len()

	candidates := index.Candidates(opts.MinSize)
	res.Stats.FilesHashed = len(candidates)

	p.StartHashing(len(candidates))
	mapped := parallel.Map(candidates, workerCount(), func(path string) (*string, error) {
		d, err := digest.File(path)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}, func(completed int, path string) {
		p.UpdateHashing(completed, len(candidates), path)
	})
	p.EndHashing()

	for _, ie := range mapped.Errors {
		log.Warn().Err(ie.Err).Str("path", ie.Item).Msg("hashing failed")
		res.Errors = append(res.Errors, HashError{Path: ie.Item, Err: ie.Err})
	}
	res.Stats.HashErrors = len(res.Errors)

	// Result slots are in submission order, so walking them keeps group
	// membership in candidate order and group emission in first-seen
	// digest order.
	members := make(map[string][]string)
	var order []string
	for i, d := range mapped.Results {
		if d == nil {
			continue
		}
		if _, ok := members[*d]; !ok {
			order = append(order, *d)
		}
		members[*d] = append(members[*d], candidates[i])
	}

	for _, d := range order {
		files := members[d]
		if len(files) < 2 {
			continue
		}

		// Group members share a size, so the first member sizes the
		// whole group. A failed stat degrades this group's waste to 0
		// but never fails the run.
		var size int64
		if info, err := os.Stat(files[0]); err != nil {
			log.Error().Err(err).Str("path", files[0]).Msg("sizing duplicate group failed")
		} else {
			size = info.Size()
			res.Stats.WastedBytes += size * int64(len(files)-1)
		}

		res.Stats.DuplicateGroups++
		res.Stats.DuplicateFiles += len(files)
		res.Groups = append(res.Groups, Group{Digest: d, Files: files, Size: size})
	}

	res.Report = renderText(res.Groups)
	return res
}

// renderText produces the plain-text report: one block per duplicate
// group, blocks separated by one blank line. No groups renders "".
func renderText(groups []Group) string {
	if len(groups) == 0 {
		return ""
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Hash: %s\n", g.Digest)
		for _, path := range g.Files {
			fmt.Fprintf(&b, "- %s\n", path)
		}
	}
	return b.String()
}
