package rewrite

import (
	"fmt"
	"strings"
	"time"
)

// Op names the step a failure happened in.
type Op string

const (
	OpWalk   Op = "walk"
	OpStat   Op = "stat"
	OpRead   Op = "read"
	OpDecode Op = "decode"
	OpWrite  Op = "write"
)

// Failure records one entry that could not be processed.
type Failure struct {
	Path string
	Op   Op
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Change records a file that was rewritten.
type Change struct {
	Path         string
	Replacements int
}

// Result is the aggregate report of a run.
type Result struct {
	RunID        string
	Root         string
	FilesScanned int
	FilesSkipped int
	Changes      []Change
	Failures     []Failure
	Duration     time.Duration
}

// FilesRewritten returns the number of files written back.
func (r *Result) FilesRewritten() int {
	return len(r.Changes)
}

// Replacements returns the total number of links replaced.
func (r *Result) Replacements() int {
	n := 0
	for _, c := range r.Changes {
		n += c.Replacements
	}
	return n
}

// HasFailures returns true if any entry could not be processed.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Files scanned: %d\n", r.FilesScanned))
	b.WriteString(fmt.Sprintf("Files rewritten: %d\n", r.FilesRewritten()))
	b.WriteString(fmt.Sprintf("Links replaced: %d\n", r.Replacements()))
	if r.FilesSkipped > 0 {
		b.WriteString(fmt.Sprintf("Entries skipped: %d\n", r.FilesSkipped))
	}

	if len(r.Failures) > 0 {
		b.WriteString(fmt.Sprintf("\nFailures: %d\n", len(r.Failures)))
		for _, f := range r.Failures {
			b.WriteString(fmt.Sprintf("  • %s (%s): %v\n", f.Path, f.Op, f.Err))
		}
	}

	return b.String()
}
