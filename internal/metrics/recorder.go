package metrics

import "time"

// FileResult enumerates per-file outcomes for counters.
type FileResult string

const (
	FileUnchanged FileResult = "unchanged"
	FileRewritten FileResult = "rewritten"
	FileFailed    FileResult = "failed"
	FileSkipped   FileResult = "skipped"
)

// Recorder defines observability hooks for a rewrite run.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncFileResult(result FileResult)
	AddReplacements(n int)
	IncWalkError()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncFileResult(FileResult)         {}
func (NoopRecorder) AddReplacements(int)              {}
func (NoopRecorder) IncWalkError()                    {}
