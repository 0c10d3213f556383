package driver

import "time"

// Stage describes a per-file pipeline phase.
type Stage string

const (
	// StagePreprocess covers include expansion and macro substitution.
	StagePreprocess Stage = "preprocess"
	// StageParse covers building the AST.
	StageParse Stage = "parse"
	// StageAnalyze covers semantic analysis.
	StageAnalyze Stage = "analyze"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the file finished with errors.
	StatusError Status = "error"
	// StatusCached indicates the file was skipped via the disk cache.
	StatusCached Status = "cached"
)

// Event reports progress for one file of a batch run.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe to
// call from the goroutine running the batch.
type ProgressSink interface {
	OnEvent(Event)
}

func emit(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}
