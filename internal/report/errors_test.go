package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ReasonUnknown},
		{"not exist", os.ErrNotExist, ReasonNotFound},
		{"permission", os.ErrPermission, ReasonPermissionDenied},
		{"path error not exist", &os.PathError{Op: "open", Path: "/gone", Err: syscall.ENOENT}, ReasonNotFound},
		{"path error eacces", &os.PathError{Op: "open", Path: "/locked", Err: syscall.EACCES}, ReasonPermissionDenied},
		{"path error eperm", &os.PathError{Op: "open", Path: "/locked", Err: syscall.EPERM}, ReasonPermissionDenied},
		{"path error eio", &os.PathError{Op: "read", Path: "/flaky", Err: syscall.EIO}, ReasonIO},
		{"path error ebusy", &os.PathError{Op: "open", Path: "/busy", Err: syscall.EBUSY}, ReasonIO},
		{"path error eisdir", &os.PathError{Op: "read", Path: "/dir", Err: syscall.EISDIR}, ReasonIO},
		{"wrapped permission", fmt.Errorf("hashing: %w", os.ErrPermission), ReasonPermissionDenied},
		{"wrapped errno", fmt.Errorf("hashing: %w", syscall.EIO), ReasonIO},
		{"plain error", errors.New("boom"), ReasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.err); got != tt.want {
				t.Errorf("Categorize(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		r    Reason
		want string
	}{
		{ReasonPermissionDenied, "permission denied"},
		{ReasonNotFound, "file disappeared"},
		{ReasonIO, "read failed"},
		{ReasonUnknown, "unknown error"},
		{Reason(42), "unspecified error"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestHashErrorErrorAndUnwrap(t *testing.T) {
	inner := os.ErrPermission
	he := HashError{Path: "/some/file.txt", Err: inner}

	if got, want := he.Error(), "/some/file.txt: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(he, os.ErrPermission) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestGroupByReason(t *testing.T) {
	errs := []HashError{
		{Path: "/a", Err: os.ErrPermission},
		{Path: "/b", Err: os.ErrNotExist},
		{Path: "/c", Err: os.ErrPermission},
		{Path: "/d", Err: errors.New("weird")},
	}

	grouped := GroupByReason(errs)

	if len(grouped[ReasonPermissionDenied]) != 2 {
		t.Errorf("permission group = %d, want 2", len(grouped[ReasonPermissionDenied]))
	}
	if len(grouped[ReasonNotFound]) != 1 {
		t.Errorf("not-found group = %d, want 1", len(grouped[ReasonNotFound]))
	}
	if len(grouped[ReasonUnknown]) != 1 {
		t.Errorf("unknown group = %d, want 1", len(grouped[ReasonUnknown]))
	}
	if got := grouped[ReasonPermissionDenied][0].Path; got != "/a" {
		t.Errorf("first permission path = %q, want /a: input order must hold", got)
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := Summarize(nil); got != "" {
			t.Errorf("Summarize(nil) = %q, want empty", got)
		}
	})

	t.Run("grouped counts", func(t *testing.T) {
		errs := []HashError{
			{Path: "/p1", Err: os.ErrPermission},
			{Path: "/p2", Err: os.ErrPermission},
			{Path: "/gone", Err: os.ErrNotExist},
		}

		got := Summarize(errs)

		if !strings.HasPrefix(got, "3 files could not be hashed:\n") {
			t.Errorf("summary header wrong: %q", got)
		}
		for _, want := range []string{
			"  permission denied: 2\n",
			"  file disappeared: 1\n",
			"    /p1\n",
			"    /p2\n",
			"    /gone\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("summary missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("truncates long groups", func(t *testing.T) {
		var errs []HashError
		for i := 0; i < 5; i++ {
			errs = append(errs, HashError{
				Path: fmt.Sprintf("/locked/%d", i),
				Err:  os.ErrPermission,
			})
		}

		got := Summarize(errs)

		if !strings.Contains(got, "... and 2 more\n") {
			t.Errorf("summary should truncate after %d paths:\n%s", maxExamplePaths, got)
		}
		if strings.Contains(got, "/locked/3") || strings.Contains(got, "/locked/4") {
			t.Errorf("truncated paths still listed:\n%s", got)
		}
	})
}
