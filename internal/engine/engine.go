package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marcus/ccsearch/internal/engineerr"
	"github.com/marcus/ccsearch/internal/filter"
	"github.com/marcus/ccsearch/internal/globexpand"
	"github.com/marcus/ccsearch/internal/query"
)

// Options configures one Search call. MaxResults is nil for unbounded; a
// non-nil pointer to 0 is a valid, distinct cap (it collects no results
// but still counts every match), which is why this isn't a plain int.
type Options struct {
	MaxResults  *int
	RoleFilter  string
	SessionID   string
	BeforeTS    string
	AfterTS     string
	ProjectPath string
	IncludeRaw  bool
	Verbose     bool
}

// Summary is the outcome of a Search call.
type Summary struct {
	Results    []Result
	Errors     []*FileError
	Total      int // count of matched records, including any dropped by the cap
	Truncated  bool
	Duration   time.Duration
	FilesSeen  int
}

// concurrency returns the worker pool size: the smaller of the file count
// and the CPU count, clamped to [4, 16], so a handful of files doesn't spin up an oversized pool and a
// huge project doesn't exhaust file descriptors or scheduler throughput.
func concurrency(fileCount int) int {
	n := runtime.NumCPU()
	if fileCount < n {
		n = fileCount
	}
	if n < 4 {
		return 4
	}
	if n > 16 {
		return 16
	}
	return n
}

// resultSink is the mutex-guarded concurrent sink every worker appends to,
// plus the total-match counter and the stop flag workers poll. cap < 0
// means unbounded; cap >= 0 limits how many results are kept, and cap == 0
// is the valid "collect nothing, still count everything" boundary.
type resultSink struct {
	mu      sync.Mutex
	results []Result
	total   int64
	cap     int
	stop    int32
}

func newResultSink(maxResults *int) *resultSink {
	if maxResults == nil {
		return &resultSink{cap: -1}
	}
	return &resultSink{cap: *maxResults}
}

func (s *resultSink) add(r Result) {
	atomic.AddInt64(&s.total, 1)
	s.mu.Lock()
	if s.cap < 0 || len(s.results) < s.cap {
		s.results = append(s.results, r)
	}
	// Reaching the cap only stops results from being kept; it does not
	// trip the stop flag, so every worker scans its whole file and the
	// total reflects every match seen.
	s.mu.Unlock()
}

func (s *resultSink) stopped() bool {
	return atomic.LoadInt32(&s.stop) == 1
}

func (s *resultSink) snapshot() ([]Result, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out, atomic.LoadInt64(&s.total)
}

// Search is the public engine façade: expand filePattern into a file set,
// run one worker per file with bounded parallelism, and return the
// aggregated, cap-truncated result set.
//
// Cancelling ctx stops in-flight workers at their next poll point. The
// result cap does not stop workers early, so Summary.Total is the full
// match count.
func Search(ctx context.Context, filePattern string, ast *query.AST, opts Options) (Summary, error) {
	start := time.Now()

	files, err := globexpand.Expand(filePattern)
	if err != nil {
		slog.Debug("search: pattern expansion failed", "pattern", filePattern, "error", err)
		return Summary{}, &engineerr.GlobError{Pattern: filePattern, Cause: err}
	}
	if len(files) == 0 {
		return Summary{Duration: time.Since(start)}, nil
	}

	pred := filter.New(filter.Options{
		RoleFilter:  opts.RoleFilter,
		SessionID:   opts.SessionID,
		BeforeTS:    opts.BeforeTS,
		AfterTS:     opts.AfterTS,
		ProjectPath: opts.ProjectPath,
	})

	sink := newResultSink(opts.MaxResults)
	sem := make(chan struct{}, concurrency(len(files)))
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var fileErrs []*FileError
	var panicked atomic.Bool
	var panicVal atomic.Value

dispatch:
	for _, path := range files {
		if sink.stopped() {
			break dispatch
		}
		select {
		case <-ctx.Done():
			break dispatch
		default:
		}

		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicVal.Store(fmt.Sprint(r))
					panicked.Store(true)
				}
			}()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if ferr := searchFile(ctx, p, ast, pred, opts, sink); ferr != nil {
				errMu.Lock()
				fileErrs = append(fileErrs, ferr)
				errMu.Unlock()
			}
		}(path)
	}

	wg.Wait()

	// A recovered worker panic is an invariant violation: discard partial
	// results rather than return a silently incomplete run.
	if panicked.Load() {
		desc, _ := panicVal.Load().(string)
		slog.Warn("search: worker panic, discarding partial results", "detail", desc)
		return Summary{}, &engineerr.Internal{Description: desc}
	}

	if len(fileErrs) == len(files) {
		slog.Debug("search: every file failed to open or scan", "file_count", len(files))
		return Summary{}, &engineerr.AllFilesFailed{FileCount: len(files)}
	}

	results, total := sink.snapshot()
	truncated := opts.MaxResults != nil && total > int64(*opts.MaxResults)

	return Summary{
		Results:   results,
		Errors:    fileErrs,
		Total:     int(total),
		Truncated: truncated,
		Duration:  time.Since(start),
		FilesSeen: len(files),
	}, nil
}
