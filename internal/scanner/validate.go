package scanner

import (
	"fmt"
	"os"
)

// ValidateRoot rejects scan roots the pipeline cannot work on: paths that
// do not exist or cannot be inspected, symbolic links, and non-directories.
// The pipeline assumes a validated root, so callers run this first.
func ValidateRoot(root string) error {
	info, err := os.Lstat(root)
	if err != nil {
		return fmt.Errorf("accessing root %q: %w", root, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("root %q is a symbolic link", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", root)
	}
	return nil
}
