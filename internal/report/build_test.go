package report

import (
	"strings"
	"testing"

	"github.com/CharlieGordon/dupfind/internal/scanner"
	"github.com/CharlieGordon/dupfind/internal/testutil"
)

// Digests of the fixture contents used below.
const (
	duplicateDigest = "e24a5a32c9b8c8637ee33cd72bff6a05a140a48891a1c1a3b06447e1900b6446" // "duplicate"
	xxDigest        = "ecc76c19c9f3c5108773d6c3a18a6c25c9bf1131c4e250b71213274e3b2b5d08" // "XX"
	yyDigest        = "c1de18d33b8f569af81c3696b6118f28f249e99bf374d01c754de0247f34614d" // "YY"
	emptyDigest     = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

type recordingReporter struct {
	scanStarts  int
	scanUpdates []int
	scanEnds    []int
	hashStarts  []int
	hashUpdates []int
	currents    []string
	hashEnds    int
}

func (r *recordingReporter) StartScanning()          { r.scanStarts++ }
func (r *recordingReporter) UpdateScanning(count int) { r.scanUpdates = append(r.scanUpdates, count) }
func (r *recordingReporter) EndScanning(total int)   { r.scanEnds = append(r.scanEnds, total) }
func (r *recordingReporter) StartHashing(total int)  { r.hashStarts = append(r.hashStarts, total) }
func (r *recordingReporter) UpdateHashing(completed, total int, current string) {
	r.hashUpdates = append(r.hashUpdates, completed)
	r.currents = append(r.currents, current)
}
func (r *recordingReporter) EndHashing() { r.hashEnds++ }

func dashLines(report string) int {
	n := 0
	for _, line := range strings.Split(report, "\n") {
		if strings.HasPrefix(line, "- ") {
			n++
		}
	}
	return n
}

func TestBuildNoDuplicates(t *testing.T) {
	t.Run("distinct sizes", func(t *testing.T) {
		f := testutil.NewFixture(t)
		f.CreateFiles(map[string]string{
			"a.txt": "one",
			"b.txt": "twelve",
			"c.txt": "ninety-nine",
		})

		res := Build(Options{Root: f.RootDir})

		if res.Report != "" {
			t.Errorf("Report = %q, want empty", res.Report)
		}
		if len(res.Groups) != 0 {
			t.Errorf("Groups = %d, want 0", len(res.Groups))
		}
		if res.Stats.FilesScanned != 3 {
			t.Errorf("FilesScanned = %d, want 3", res.Stats.FilesScanned)
		}
		if res.Stats.FilesHashed != 0 {
			t.Errorf("FilesHashed = %d, want 0: unique sizes should never be hashed", res.Stats.FilesHashed)
		}
	})

	t.Run("same size distinct content", func(t *testing.T) {
		f := testutil.NewFixture(t)
		f.CreateFiles(map[string]string{
			"a.txt": "aaaa",
			"b.txt": "bbbb",
			"c.txt": "cccc",
		})

		res := Build(Options{Root: f.RootDir})

		if res.Report != "" {
			t.Errorf("Report = %q, want empty", res.Report)
		}
		if res.Stats.FilesHashed != 3 {
			t.Errorf("FilesHashed = %d, want 3", res.Stats.FilesHashed)
		}
		if res.Stats.DuplicateGroups != 0 {
			t.Errorf("DuplicateGroups = %d, want 0", res.Stats.DuplicateGroups)
		}
		if res.Stats.WastedBytes != 0 {
			t.Errorf("WastedBytes = %d, want 0", res.Stats.WastedBytes)
		}
	})
}

func TestBuildTwoIdenticalFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("a.txt", "duplicate")
	b := f.CreateFile("b.txt", "duplicate")

	res := Build(Options{Root: f.RootDir})

	want := "Hash: " + duplicateDigest + "\n- " + a + "\n- " + b + "\n"
	if res.Report != want {
		t.Errorf("Report = %q, want %q", res.Report, want)
	}
	if len(res.Groups) != 1 {
		t.Fatalf("Groups = %d, want 1", len(res.Groups))
	}
	g := res.Groups[0]
	if g.Digest != duplicateDigest {
		t.Errorf("Digest = %q, want %q", g.Digest, duplicateDigest)
	}
	if g.Size != 9 {
		t.Errorf("Size = %d, want 9", g.Size)
	}

	stats := res.Stats
	if stats.FilesScanned != 2 || stats.FilesHashed != 2 {
		t.Errorf("scanned/hashed = %d/%d, want 2/2", stats.FilesScanned, stats.FilesHashed)
	}
	if stats.DuplicateGroups != 1 || stats.DuplicateFiles != 2 {
		t.Errorf("groups/files = %d/%d, want 1/2", stats.DuplicateGroups, stats.DuplicateFiles)
	}
	if stats.WastedBytes != 9 {
		t.Errorf("WastedBytes = %d, want 9", stats.WastedBytes)
	}
	if stats.HashErrors != 0 {
		t.Errorf("HashErrors = %d, want 0", stats.HashErrors)
	}
}

func TestBuildReportFormat(t *testing.T) {
	f := testutil.NewFixture(t)
	a1 := f.CreateFile("a1.txt", "XX")
	a2 := f.CreateFile("a2.txt", "XX")
	b1 := f.CreateFile("b1.txt", "YY")
	b2 := f.CreateFile("b2.txt", "YY")

	res := Build(Options{Root: f.RootDir})

	// Both pairs share a size, so all four files land in one candidate
	// bucket in walk order; groups then come out in first-seen digest
	// order, one blank line apart, with a trailing newline.
	want := "Hash: " + xxDigest + "\n- " + a1 + "\n- " + a2 + "\n" +
		"\n" +
		"Hash: " + yyDigest + "\n- " + b1 + "\n- " + b2 + "\n"
	if res.Report != want {
		t.Errorf("Report = %q, want %q", res.Report, want)
	}
	if got := strings.Count(res.Report, "\n\n"); got != 1 {
		t.Errorf("blank separators = %d, want 1", got)
	}
	if !strings.HasSuffix(res.Report, "\n") {
		t.Error("report should end with a newline")
	}
	if dashLines(res.Report) != 4 {
		t.Errorf("file lines = %d, want 4", dashLines(res.Report))
	}
	if len(res.Groups) != 2 {
		t.Fatalf("Groups = %d, want 2", len(res.Groups))
	}
	if res.Groups[0].Digest != xxDigest || res.Groups[1].Digest != yyDigest {
		t.Errorf("group order = [%s, %s], want XX group first", res.Groups[0].Digest, res.Groups[1].Digest)
	}
}

func TestBuildExcludePath(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("a.txt", "shared-content")
	b := f.CreateFile("b.txt", "shared-content")
	c := f.CreateFile("c.txt", "shared-content")

	res := Build(Options{Root: f.RootDir, ExcludePath: c})

	f.AssertContains(res.Report, a)
	f.AssertContains(res.Report, b)
	f.AssertNotContains(res.Report, c)

	if res.Stats.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2: excluded path must not be indexed", res.Stats.FilesScanned)
	}
	if res.Stats.FilesHashed != 2 {
		t.Errorf("FilesHashed = %d, want 2", res.Stats.FilesHashed)
	}
	if len(res.Groups) != 1 || len(res.Groups[0].Files) != 2 {
		t.Fatalf("want a single two-file group, got %+v", res.Groups)
	}
}

func TestBuildExcludeGlobs(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("a.txt", "shared-content")
	b := f.CreateFile("b.txt", "shared-content")
	hidden := f.CreateFile(".git/objects/pack", "shared-content")
	temp := f.CreateFile("c.tmp", "shared-content")

	res := Build(Options{Root: f.RootDir, ExcludeGlobs: []string{".git", "*.tmp"}})

	f.AssertContains(res.Report, a)
	f.AssertContains(res.Report, b)
	f.AssertNotContains(res.Report, hidden)
	f.AssertNotContains(res.Report, temp)

	if res.Stats.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2: excluded patterns must not be indexed", res.Stats.FilesScanned)
	}
	if len(res.Groups) != 1 || len(res.Groups[0].Files) != 2 {
		t.Fatalf("want a single two-file group, got %+v", res.Groups)
	}
}

func TestBuildExtensionFilter(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("a.txt", "same-content")
	b := f.CreateFile("b.txt", "same-content")
	c := f.CreateFile("c.dat", "same-content")

	res := Build(Options{
		Root:       f.RootDir,
		Extensions: scanner.NormalizeExtensions([]string{".txt"}),
	})

	f.AssertContains(res.Report, a)
	f.AssertContains(res.Report, b)
	f.AssertNotContains(res.Report, c)

	if res.Stats.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", res.Stats.FilesScanned)
	}
}

func TestBuildSymlinksNotCounted(t *testing.T) {
	f := testutil.NewFixture(t)
	real1 := f.CreateFile("real1.txt", "same")
	f.CreateFile("real2.txt", "same")
	f.CreateSymlink(real1, "link.txt")

	res := Build(Options{Root: f.RootDir})

	if res.Stats.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2: symlinks are not files", res.Stats.FilesScanned)
	}
	if len(res.Groups) != 1 {
		t.Fatalf("Groups = %d, want 1", len(res.Groups))
	}
	if len(res.Groups[0].Files) != 2 {
		t.Errorf("group size = %d, want 2", len(res.Groups[0].Files))
	}
	f.AssertNotContains(res.Report, "link.txt")
}

func TestBuildZeroByteDuplicates(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("empty1.txt", "")
	b := f.CreateFile("empty2.txt", "")

	res := Build(Options{Root: f.RootDir})

	want := "Hash: " + emptyDigest + "\n- " + a + "\n- " + b + "\n"
	if res.Report != want {
		t.Errorf("Report = %q, want %q", res.Report, want)
	}
	if res.Stats.DuplicateGroups != 1 || res.Stats.DuplicateFiles != 2 {
		t.Errorf("groups/files = %d/%d, want 1/2",
			res.Stats.DuplicateGroups, res.Stats.DuplicateFiles)
	}
	if res.Stats.WastedBytes != 0 {
		t.Errorf("WastedBytes = %d, want 0 for empty files", res.Stats.WastedBytes)
	}
}

func TestBuildHashErrorDoesNotAbort(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	good1 := f.CreateFile("good1.txt", "aaaa")
	good2 := f.CreateFile("good2.txt", "aaaa")
	bad := f.CreateUnreadableFile("zbad.txt", "bbbb")

	res := Build(Options{Root: f.RootDir})

	// All three share a size, so all three are candidates; the unreadable
	// one fails at open time and must not take the batch down with it.
	if res.Stats.FilesHashed != 3 {
		t.Errorf("FilesHashed = %d, want 3", res.Stats.FilesHashed)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %d, want 1", len(res.Errors))
	}
	if res.Errors[0].Path != bad {
		t.Errorf("error path = %q, want %q", res.Errors[0].Path, bad)
	}
	if Categorize(res.Errors[0].Err) != ReasonPermissionDenied {
		t.Errorf("Categorize = %v, want permission denied", Categorize(res.Errors[0].Err))
	}
	if res.Stats.HashErrors != 1 {
		t.Errorf("HashErrors = %d, want 1", res.Stats.HashErrors)
	}

	f.AssertContains(res.Report, good1)
	f.AssertContains(res.Report, good2)
	f.AssertNotContains(res.Report, bad)
	if res.Stats.DuplicateGroups != 1 || res.Stats.DuplicateFiles != 2 {
		t.Errorf("groups/files = %d/%d, want 1/2",
			res.Stats.DuplicateGroups, res.Stats.DuplicateFiles)
	}
	if res.Stats.WastedBytes != 4 {
		t.Errorf("WastedBytes = %d, want 4", res.Stats.WastedBytes)
	}
}

func TestBuildMinSize(t *testing.T) {
	f := testutil.NewFixture(t)
	big1 := f.CreateFile("big1.txt", "0123456789")
	big2 := f.CreateFile("big2.txt", "0123456789")
	tiny1 := f.CreateFile("tiny1.txt", "ab")
	f.CreateFile("tiny2.txt", "ab")

	res := Build(Options{Root: f.RootDir, MinSize: 5})

	if res.Stats.FilesScanned != 4 {
		t.Errorf("FilesScanned = %d, want 4", res.Stats.FilesScanned)
	}
	if res.Stats.FilesHashed != 2 {
		t.Errorf("FilesHashed = %d, want 2: the small pair sits below the threshold", res.Stats.FilesHashed)
	}
	if len(res.Groups) != 1 {
		t.Fatalf("Groups = %d, want 1", len(res.Groups))
	}
	f.AssertContains(res.Report, big1)
	f.AssertContains(res.Report, big2)
	f.AssertNotContains(res.Report, tiny1)
	if res.Stats.WastedBytes != 10 {
		t.Errorf("WastedBytes = %d, want 10", res.Stats.WastedBytes)
	}
}

func TestBuildWastedBytesAcrossGroups(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFiles(map[string]string{
		"x1.txt": "aaaa",
		"x2.txt": "aaaa",
		"x3.txt": "aaaa",
		"y1.txt": "bbbbbb",
		"y2.txt": "bbbbbb",
	})

	res := Build(Options{Root: f.RootDir})

	// 4 bytes kept twice over plus 6 bytes kept once over.
	if res.Stats.WastedBytes != 14 {
		t.Errorf("WastedBytes = %d, want 14", res.Stats.WastedBytes)
	}
	if res.Stats.DuplicateGroups != 2 {
		t.Errorf("DuplicateGroups = %d, want 2", res.Stats.DuplicateGroups)
	}
	if res.Stats.DuplicateFiles != 5 {
		t.Errorf("DuplicateFiles = %d, want 5", res.Stats.DuplicateFiles)
	}
}

func TestBuildProgressEvents(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFiles(map[string]string{
		"dup1.txt":  "qq",
		"dup2.txt":  "qq",
		"other.txt": "qqq",
	})

	rec := &recordingReporter{}
	Build(Options{Root: f.RootDir, Progress: rec})

	if rec.scanStarts != 1 {
		t.Errorf("scanStarts = %d, want 1", rec.scanStarts)
	}
	if len(rec.scanEnds) != 1 || rec.scanEnds[0] != 3 {
		t.Errorf("scanEnds = %v, want [3]", rec.scanEnds)
	}
	if len(rec.hashStarts) != 1 || rec.hashStarts[0] != 2 {
		t.Errorf("hashStarts = %v, want [2]", rec.hashStarts)
	}
	if len(rec.hashUpdates) != 2 || rec.hashUpdates[0] != 1 || rec.hashUpdates[1] != 2 {
		t.Errorf("hashUpdates = %v, want [1 2]", rec.hashUpdates)
	}
	for i, cur := range rec.currents {
		if cur == "" {
			t.Errorf("currents[%d] is empty, want the path just hashed", i)
		}
	}
	if rec.hashEnds != 1 {
		t.Errorf("hashEnds = %d, want 1", rec.hashEnds)
	}
}

func TestWorkerCount(t *testing.T) {
	n := workerCount()
	if n < 2 || n > 8 {
		t.Errorf("workerCount() = %d, want within [2, 8]", n)
	}
}
