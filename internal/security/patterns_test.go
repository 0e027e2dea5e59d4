package security

import (
	"strings"
	"testing"
)

func TestValidateGlobPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		shouldError bool
	}{
		{"simple wildcard", "*.txt", false},
		{"character class", "[abc]*.txt", false},
		{"question mark", "file?.txt", false},
		{"bare directory name", "node_modules", false},
		{"hidden directory", ".git", false},
		{"empty pattern", "", false}, // filepath.Match allows empty patterns
		{"invalid syntax - unmatched bracket", "[abc", true},
		{"unmatched brace is literal", "{abc", false}, // Braces not special in filepath.Match
		{"pattern with traversal", "../*.txt", true},
		{"pattern with embedded traversal", "cache/../*.log", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlobPattern(tt.pattern)

			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error for pattern '%s', got nil", tt.pattern)
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error for pattern '%s', got: %v", tt.pattern, err)
				}
			}
		})
	}
}

func TestValidateGlobPatterns(t *testing.T) {
	if err := ValidateGlobPatterns([]string{"*.tmp", ".git", "node_modules"}); err != nil {
		t.Errorf("Expected no error for valid patterns, got: %v", err)
	}

	err := ValidateGlobPatterns([]string{"*.tmp", "[bad"})
	if err == nil {
		t.Fatal("Expected error for invalid pattern in slice, got nil")
	}
	if !strings.Contains(err.Error(), "[bad") {
		t.Errorf("Expected error to name the bad pattern, got: %v", err)
	}
}

func TestValidateGlobPatternsEmpty(t *testing.T) {
	if err := ValidateGlobPatterns(nil); err != nil {
		t.Errorf("Expected no error for nil slice, got: %v", err)
	}
}
