// Package engine implements the fan-out search engine: one worker per
// matched file, bounded parallelism sized off CPU count, a shared result
// sink that keeps at most the capped number of results while counting
// every match.
package engine

import "github.com/marcus/ccsearch/internal/record"

// Result is one matched record returned by a search.
type Result struct {
	FilePath      string
	UUID          string
	Timestamp     string
	SessionID     string
	RoleTag       string
	ExtractedText string
	MessageKind   record.Kind
	ProjectPath   string
	RawJSON       []byte // populated only when Options.IncludeRaw is set
}

// FileError reports a single file's I/O failure; it never aborts the run.
type FileError struct {
	FilePath string
	Err      error
}

func (e *FileError) Error() string {
	return e.FilePath + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }
