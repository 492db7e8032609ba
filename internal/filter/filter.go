// Package filter applies the non-text predicates (role, session, time
// window, project path) to a decoded record before the costlier query
// evaluation ever runs.
package filter

import (
	"strings"

	"github.com/marcus/ccsearch/internal/pathenc"
	"github.com/marcus/ccsearch/internal/record"
)

// Options carries the non-text predicates of a single search request.
// A zero-value field means "no constraint".
type Options struct {
	RoleFilter  string // "user" | "assistant" | "system" | "summary"
	SessionID   string
	BeforeTS    string
	AfterTS     string
	ProjectPath string
}

// Predicate evaluates Options against one decoded record. It is built once
// per search and shared read-only across every file worker.
type Predicate struct {
	opts Options
}

// New builds a Predicate from the given options.
func New(opts Options) *Predicate {
	return &Predicate{opts: opts}
}

// Match applies the role, session, time-window, and project predicates in
// that exact order, short-circuiting on the first failure so ExtractText
// is never called for a rejected record. filePath is the source file the
// record was decoded from, needed only for the project-path predicate.
func (p *Predicate) Match(m *record.Message, filePath string) (bool, error) {
	if p.opts.RoleFilter != "" {
		if !strings.EqualFold(m.RoleTag(), p.opts.RoleFilter) {
			return false, nil
		}
	}

	if p.opts.SessionID != "" {
		if m.SessionID != p.opts.SessionID {
			return false, nil
		}
	}

	if p.opts.BeforeTS != "" || p.opts.AfterTS != "" {
		if !m.HasTimestamp() {
			return false, nil
		}
		if p.opts.BeforeTS != "" && m.Timestamp >= p.opts.BeforeTS {
			return false, nil
		}
		if p.opts.AfterTS != "" && m.Timestamp <= p.opts.AfterTS {
			return false, nil
		}
	}

	if p.opts.ProjectPath != "" {
		belongs, err := pathenc.BelongsToProject(filePath, p.opts.ProjectPath)
		if err != nil {
			return false, err
		}
		if !belongs {
			return false, nil
		}
	}

	return true, nil
}
