// Package security validates user-supplied input before it reaches the
// filesystem walk.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateGlobPattern validates that an exclude pattern is safe to match
// against scanned paths.
func ValidateGlobPattern(pattern string) error {
	// Check for directory traversal
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	// Try to match the pattern to ensure it's valid
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	return nil
}

// ValidateGlobPatterns validates every pattern in the slice and reports
// the first failure.
func ValidateGlobPatterns(patterns []string) error {
	for _, pattern := range patterns {
		if err := ValidateGlobPattern(pattern); err != nil {
			return err
		}
	}
	return nil
}
