package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
)

// Reason categorizes why a file failed to hash.
type Reason int

const (
	ReasonPermissionDenied Reason = iota
	ReasonNotFound
	ReasonIO
	ReasonUnknown
)

// maxExamplePaths bounds how many paths a summary lists per reason.
const maxExamplePaths = 3

// String returns a human-readable reason.
func (r Reason) String() string {
	switch r {
	case ReasonPermissionDenied:
		return "permission denied"
	case ReasonNotFound:
		return "file disappeared"
	case ReasonIO:
		return "read failed"
	case ReasonUnknown:
		return "unknown error"
	default:
		return "unspecified error"
	}
}

// HashError records one file the pipeline could not hash. The file is
// excluded from grouping but the error always reaches the caller.
type HashError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e HashError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is and errors.As.
func (e HashError) Unwrap() error { return e.Err }

// Categorize maps a hash failure to a display Reason. errors.Is sees
// through both fmt wrapping and PathError, and knows the errno aliases
// for the os sentinels, so EACCES and ENOENT land in the right bucket
// without being listed here.
func Categorize(err error) Reason {
	if err == nil {
		return ReasonUnknown
	}
	if errors.Is(err, os.ErrNotExist) {
		return ReasonNotFound
	}
	if errors.Is(err, os.ErrPermission) {
		return ReasonPermissionDenied
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EIO, syscall.EBUSY, syscall.EISDIR:
			return ReasonIO
		}
	}

	return ReasonUnknown
}

// GroupByReason buckets hash errors for summary display.
func GroupByReason(errs []HashError) map[Reason][]HashError {
	grouped := make(map[Reason][]HashError)
	for _, he := range errs {
		r := Categorize(he.Err)
		grouped[r] = append(grouped[r], he)
	}
	return grouped
}

// Summarize renders a short grouped account of hash errors with a few
// example paths per reason. Returns "" when there are none.
func Summarize(errs []HashError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupByReason(errs)

	var b strings.Builder
	fmt.Fprintf(&b, "%d files could not be hashed:\n", len(errs))
	for _, r := range []Reason{ReasonPermissionDenied, ReasonNotFound, ReasonIO, ReasonUnknown} {
		group := grouped[r]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d\n", r, len(group))
		for i, he := range group {
			if i == maxExamplePaths {
				fmt.Fprintf(&b, "    ... and %d more\n", len(group)-maxExamplePaths)
				break
			}
			fmt.Fprintf(&b, "    %s\n", he.Path)
		}
	}

	return b.String()
}
