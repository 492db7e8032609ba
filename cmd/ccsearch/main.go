// Command ccsearch is the CLI front end over the search engine: it parses
// flags, builds a query and search options, runs one search (or, with
// --watch, re-runs on every matched file change), and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/marcus/ccsearch/internal/applog"
	"github.com/marcus/ccsearch/internal/engine"
	"github.com/marcus/ccsearch/internal/query"
	"github.com/marcus/ccsearch/internal/render"
	"github.com/marcus/ccsearch/internal/stats"
	"github.com/marcus/ccsearch/internal/watch"
)

const defaultPattern = "~/.claude/projects/**/*.jsonl"

// Process exit codes.
const (
	exitOK           = 0
	exitQueryError   = 1
	exitIOError      = 2
	exitInvalidFlags = 3
)

var (
	maxResults  = flag.Int("max-results", -1, "cap the number of results (-1 = unbounded)")
	roleFilter  = flag.String("role", "", "filter by role: user|assistant|system|summary")
	sessionID   = flag.String("session-id", "", "filter by exact session id")
	beforeTS    = flag.String("before", "", "only records with timestamp < TS (RFC 3339)")
	afterTS     = flag.String("after", "", "only records with timestamp > TS (RFC 3339)")
	projectPath = flag.String("project-path", "", "only records under this project path")
	full        = flag.Bool("full", false, "print full extracted text instead of a preview")
	noColor     = flag.Bool("no-color", false, "disable styled output")
	verbose     = flag.Bool("verbose", false, "enable debug logging and per-file error reporting")
	watchFlag   = flag.Bool("watch", false, "re-run the search whenever a matched file changes")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccsearch [options] QUERY [PATTERN]\n\n")
		fmt.Fprintf(os.Stderr, "Search Claude Code session logs by boolean query.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return exitInvalidFlags
	}

	queryText := args[0]
	pattern := defaultPattern
	if len(args) > 1 {
		pattern = args[1]
	}

	if *roleFilter != "" {
		switch *roleFilter {
		case "user", "assistant", "system", "summary":
		default:
			fmt.Fprintf(os.Stderr, "invalid --role %q\n", *roleFilter)
			return exitInvalidFlags
		}
	}

	logPath := ""
	if *verbose {
		logPath = applog.DefaultPath()
	}
	_, closeLog, _ := applog.Setup(logPath, *verbose)
	defer closeLog()

	ast, perr := query.Parse(queryText)
	if perr != nil {
		slog.Debug("query parse failed", "query", queryText, "position", perr.Position, "kind", perr.Kind)
		fmt.Fprintf(os.Stderr, "invalid query at position %d: %s\n", perr.Position, perr.Kind)
		return exitQueryError
	}

	opts := engine.Options{
		RoleFilter:  *roleFilter,
		SessionID:   *sessionID,
		BeforeTS:    *beforeTS,
		AfterTS:     *afterTS,
		ProjectPath: *projectPath,
		Verbose:     *verbose,
	}
	if *maxResults >= 0 {
		opts.MaxResults = maxResults
	}

	styles := render.New(*noColor)

	if !*watchFlag {
		return searchOnce(pattern, ast, opts, styles)
	}
	return searchWatch(pattern, ast, opts, styles)
}

func searchOnce(pattern string, ast *query.AST, opts engine.Options, styles render.Styles) int {
	summary, err := engine.Search(context.Background(), pattern, ast, opts)
	if err != nil {
		slog.Debug("search run failed", "pattern", pattern, "error", err)
		fmt.Println(render.Error(styles, err))
		return exitIOError
	}

	printSummary(summary, opts, styles)
	return exitOK
}

func searchWatch(pattern string, ast *query.AST, opts engine.Options, styles render.Styles) int {
	dir := watch.DirOf(pattern)
	triggers, stop, err := watch.Watch(dir)
	if err != nil {
		fmt.Println(render.Error(styles, err))
		return exitIOError
	}
	defer stop()

	code := searchOnce(pattern, ast, opts, styles)
	for range triggers {
		fmt.Println(styles.Muted.Render("--- re-running on change ---"))
		code = searchOnce(pattern, ast, opts, styles)
	}
	return code
}

func printSummary(summary engine.Summary, opts engine.Options, styles render.Styles) {
	for _, r := range summary.Results {
		fmt.Print(render.Result(styles, r, *full))
	}
	fmt.Println(render.Summary(styles, stats.Aggregate(summary.Results)))

	if opts.Verbose {
		for _, ferr := range summary.Errors {
			fmt.Fprintln(os.Stderr, render.Error(styles, ferr))
		}
	}
}
