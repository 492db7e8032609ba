package engine

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/marcus/ccsearch/internal/decode"
	"github.com/marcus/ccsearch/internal/filter"
	"github.com/marcus/ccsearch/internal/pathenc"
	"github.com/marcus/ccsearch/internal/query"
)

// maxLineSize bounds a single JSONL line; session files occasionally carry
// large tool-result payloads on one line, so the scanner buffer is allowed
// to grow well past its pooled starting capacity.
const maxLineSize = 8 * 1024 * 1024

// searchFile streams one file line by line, decoding, filtering, and
// evaluating the query against each record in turn. It reports matches
// through sink and checks ctx before every line, so caller cancellation
// halts the scan promptly; a full result cap does not. I/O errors are
// returned rather than panicking or aborting the run; lines that fail to
// decode are silently skipped, since one malformed line in a session file
// shouldn't fail the whole search.
func searchFile(ctx context.Context, path string, ast *query.AST, pred *filter.Predicate, opts Options, sink *resultSink) *FileError {
	f, err := os.Open(path)
	if err != nil {
		slog.Debug("search: could not open file", "path", path, "error", err)
		return &FileError{FilePath: path, Err: err}
	}
	defer f.Close()

	projectPath, _ := deriveProjectPath(path)

	dec := decode.New(opts.IncludeRaw)
	scanner := bufio.NewScanner(f)
	buf := decode.GetScanBuffer()
	defer decode.PutScanBuffer(buf)
	scanner.Buffer(buf, maxLineSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if sink.stopped() {
			return nil
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		msg, ok := dec.DecodeLine(line)
		if !ok {
			continue
		}

		passed, ferr := pred.Match(&msg, path)
		if ferr != nil {
			slog.Debug("search: filter predicate failed", "path", path, "error", ferr)
			return &FileError{FilePath: path, Err: ferr}
		}
		if !passed {
			continue
		}

		text := msg.ExtractText()
		if !ast.Match(text) {
			continue
		}

		result := Result{
			FilePath:      path,
			UUID:          msg.UUID,
			Timestamp:     msg.Timestamp,
			SessionID:     msg.SessionID,
			RoleTag:       msg.RoleTag(),
			ExtractedText: text,
			MessageKind:   msg.Kind,
			ProjectPath:   projectPath,
		}
		if opts.IncludeRaw {
			result.RawJSON = msg.Raw
		}

		sink.add(result)

		if sink.stopped() {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Debug("search: scan failed partway through file", "path", path, "error", err)
		return &FileError{FilePath: path, Err: err}
	}
	return nil
}

// deriveProjectPath extracts the encoded project directory segment of path
// for attachment to results, independent of any --project-path filter.
func deriveProjectPath(path string) (string, bool) {
	return pathenc.ProjectDir(path)
}
