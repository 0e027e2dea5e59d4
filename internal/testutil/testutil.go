// Package testutil provides test helpers and fixtures for dupfind tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fixture builds file trees under an auto-cleaned temp root.
type Fixture struct {
	T       *testing.T
	RootDir string
}

// NewFixture creates a fixture rooted in a fresh t.TempDir.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return &Fixture{T: t, RootDir: t.TempDir()}
}

// CreateFile creates a file with the given content, making parent
// directories as needed, and returns its absolute path.
func (f *Fixture) CreateFile(relPath, content string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFiles creates several files at once, keyed by relative path.
func (f *Fixture) CreateFiles(files map[string]string) {
	f.T.Helper()
	for rel, content := range files {
		f.CreateFile(rel, content)
	}
}

// CreateDir creates a directory and returns its absolute path.
func (f *Fixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithMode creates a file and then sets its permissions explicitly.
func (f *Fixture) CreateFileWithMode(relPath, content string, mode os.FileMode) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, mode); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateUnreadableFile creates a file whose content cannot be opened for
// reading. Its size is still visible through stat.
func (f *Fixture) CreateUnreadableFile(relPath, content string) string {
	f.T.Helper()
	return f.CreateFileWithMode(relPath, content, 0000)
}

// CreateUnreadableDir creates a directory holding one trapped file, then
// removes all permissions from it. Cleanup restores the mode so TempDir
// removal still works.
func (f *Fixture) CreateUnreadableDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	f.CreateFile(filepath.Join(relPath, "trapped.txt"), "trapped")

	if err := os.Chmod(dirPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}
	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateSymlink creates a symbolic link at linkPath pointing at target.
func (f *Fixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}
	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// CreateBrokenSymlink creates a symlink pointing at a target that does not
// exist.
func (f *Fixture) CreateBrokenSymlink(linkPath string) string {
	f.T.Helper()
	return f.CreateSymlink("/nonexistent/target/"+randomString(8), linkPath)
}

// Path returns the absolute path for a relative path within the fixture.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// FileExists reports whether path exists.
func (f *Fixture) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AssertFileExists fails the test if the file does not exist.
func (f *Fixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertContains fails the test unless s contains substr.
func (f *Fixture) AssertContains(s, substr string) {
	f.T.Helper()
	if !strings.Contains(s, substr) {
		f.T.Errorf("expected %q to contain %q", s, substr)
	}
}

// AssertNotContains fails the test if s contains substr.
func (f *Fixture) AssertNotContains(s, substr string) {
	f.T.Helper()
	if strings.Contains(s, substr) {
		f.T.Errorf("expected %q to not contain %q", s, substr)
	}
}

// IsRoot returns true if running as root.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test when running as root, where permission-based
// fixtures cannot fail.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

// randomString generates a random hex string of the given length.
func randomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return fmt.Sprintf("%x", b)[:length]
}
