package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/CharlieGordon/dupfind/internal/logger"
	"github.com/CharlieGordon/dupfind/internal/progress"
)

// ScanOptions control one size-collection pass.
type ScanOptions struct {
	// Root is the directory to scan, already checked with ValidateRoot and
	// resolved to an absolute path by the caller.
	Root string

	// ExcludePath, when non-empty, names one absolute path to drop from
	// the scan. The CLI points it at its own report file so an in-progress
	// report never scans itself.
	ExcludePath string

	// ExcludeGlobs are matched against each segment of the path relative
	// to Root, so a bare directory name like ".git" prunes its whole
	// subtree. Patterns are validated at config load.
	ExcludeGlobs []string

	// Extensions, when non-nil, is a normalized allow-list: only files
	// whose lower-cased extension is a key survive. Build it with
	// NormalizeExtensions.
	Extensions map[string]struct{}

	// Progress receives scan lifecycle events. Nil means silent.
	Progress progress.Reporter
}

// SizeIndex buckets file paths by exact byte size. Bucket member order is
// discovery order, and Sizes preserves the order each size was first seen;
// map iteration alone would shuffle buckets between runs.
type SizeIndex struct {
	Groups map[int64][]string
	Sizes  []int64
	total  int
}

func (x *SizeIndex) add(path string, size int64) {
	if _, ok := x.Groups[size]; !ok {
		x.Sizes = append(x.Sizes, size)
	}
	x.Groups[size] = append(x.Groups[size], path)
	x.total++
}

// Len returns the number of files indexed.
func (x *SizeIndex) Len() int { return x.total }

// Candidates returns every file that shares its exact size with at least
// one other file, in first-seen-size then discovery order. Buckets whose
// size is below minSize are dropped; pass 0 to keep them all.
func (x *SizeIndex) Candidates(minSize int64) []string {
	var out []string
	for _, size := range x.Sizes {
		paths := x.Groups[size]
		if len(paths) < 2 || size < minSize {
			continue
		}
		out = append(out, paths...)
	}
	return out
}

// NormalizeExtensions lower-cases each entry and ensures a leading dot, so
// "TXT", ".txt" and "txt" all mean the same filter. Blank entries are
// dropped. Returns nil when nothing is left, which CollectSizeGroups reads
// as "no filter".
func NormalizeExtensions(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = struct{}{}
	}

	if len(set) == 0 {
		return nil
	}
	return set
}

// CollectSizeGroups walks opts.Root and buckets surviving regular files by
// exact byte size. Files matching opts.ExcludePath, matching an exclude
// glob, or falling outside the extension allow-list are dropped before the
// stat. A stat failure, or an
// entry that is no longer a regular file by stat time, is logged and
// skipped. Every per-file problem is consumed here, so there is no error
// return.
func CollectSizeGroups(opts ScanOptions) *SizeIndex {
	index := &SizeIndex{Groups: make(map[int64][]string)}
	log := logger.Get()

	p := opts.Progress
	if p == nil {
		p = progress.Noop{}
	}

	p.StartScanning()
	WalkFiles(opts.Root, func(path string) {
		if opts.ExcludePath != "" && path == opts.ExcludePath {
			return
		}
		if matchesAnyGlob(opts.Root, path, opts.ExcludeGlobs) {
			return
		}
		if opts.Extensions != nil {
			if _, ok := opts.Extensions[strings.ToLower(filepath.Ext(path))]; !ok {
				return
			}
		}

		info, err := os.Stat(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("stat failed, skipping file")
			return
		}
		// The entry can change type between the walk and this stat.
		if !info.Mode().IsRegular() {
			return
		}

		index.add(path, info.Size())
		p.UpdateScanning(index.Len())
	})
	p.EndScanning(index.Len())

	return index
}

// matchesAnyGlob reports whether any segment of path below root matches
// one of the patterns. Matching the relative path keeps patterns from
// hitting directories above the scan root.
func matchesAnyGlob(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	for _, segment := range strings.Split(rel, string(os.PathSeparator)) {
		for _, pattern := range patterns {
			if matched, _ := filepath.Match(pattern, segment); matched {
				return true
			}
		}
	}
	return false
}
