package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotInstalled aborts a run before any work is done.
	ErrToolNotInstalled = errors.New("audit tool is not installed")
	// ErrNoURLsResolved aborts a run when no URL source produced anything.
	ErrNoURLsResolved = errors.New("no URLs resolved")
	// ErrInvocationTimeout marks an invocation killed after the configured timeout.
	ErrInvocationTimeout = errors.New("audit invocation timed out")
	// ErrMissingCategory marks a report lacking one of the summary categories.
	ErrMissingCategory = errors.New("report category missing")
)

// URLSourceError is a failure reading or parsing a URL source file.
type URLSourceError struct {
	Source string
	Err    error
}

func (e *URLSourceError) Error() string {
	return fmt.Sprintf("failed to read URL source %s: %v", e.Source, e.Err)
}

func (e *URLSourceError) Unwrap() error {
	return e.Err
}

// InvocationError is the failure of one audit invocation for one URL and variant.
type InvocationError struct {
	URL      string
	Variant  Variant
	Format   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *InvocationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "audit of %s (%s, %s) failed", e.URL, e.Variant, e.Format)
	if e.ExitCode > 0 {
		fmt.Fprintf(&sb, ": exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&sb, " (stderr: %s)", lastLine(stderr))
	}
	return sb.String()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// PersistenceError is a failure writing a summary file.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist summary %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
