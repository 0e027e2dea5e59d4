package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// Scanner Benchmarks
// =============================================================================

func BenchmarkNormalizeExtensions(b *testing.B) {
	inputs := []string{".jpg", "PNG", " mp4 ", "txt", ".TXT"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NormalizeExtensions(inputs)
	}
}

func BenchmarkMatchesAnyGlob(b *testing.B) {
	patterns := []string{".git", "node_modules", "*.tmp"}
	paths := []string{
		"/scan/root/src/main.go",
		"/scan/root/.git/objects/ab/cdef",
		"/scan/root/web/node_modules/react/index.js",
		"/scan/root/build/output.tmp",
		"/scan/root/docs/readme.md",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range paths {
			matchesAnyGlob("/scan/root", p, patterns)
		}
	}
}

func BenchmarkCandidates(b *testing.B) {
	index := &SizeIndex{Groups: make(map[int64][]string)}
	for i := 0; i < 1000; i++ {
		index.add(fmt.Sprintf("/r/file%04d", i), int64(i%100))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		index.Candidates(0)
	}
}

func BenchmarkCollectSizeGroups(b *testing.B) {
	root := b.TempDir()
	for d := 0; d < 10; d++ {
		dir := filepath.Join(root, fmt.Sprintf("dir%02d", d))
		if err := os.MkdirAll(dir, 0755); err != nil {
			b.Fatal(err)
		}
		for i := 0; i < 20; i++ {
			path := filepath.Join(dir, fmt.Sprintf("file%02d.txt", i))
			content := strings.Repeat("x", i*16)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				b.Fatal(err)
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CollectSizeGroups(ScanOptions{Root: root})
	}
}
