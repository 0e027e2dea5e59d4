package scanner

import (
	"io/fs"
	"path/filepath"

	"github.com/CharlieGordon/dupfind/internal/logger"
)

// WalkFiles visits every regular file under root and hands its path to fn.
//
// Symbolic links are never followed: WalkDir classifies entries by lstat,
// so a link to a file or a directory is a non-regular entry and is dropped
// without being resolved. Devices, FIFOs and sockets are dropped the same
// way. An unreadable directory is logged and skipped; traversal continues
// with its siblings.
func WalkFiles(root string, fn func(path string)) {
	// The callback never returns an error, so neither does WalkDir.
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Get().Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fn(path)
		return nil
	})
}
