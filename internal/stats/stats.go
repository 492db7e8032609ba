// Package stats aggregates a completed search's results into summary
// counts, the way claudecode.StatsCache's GetPeakHours/CacheEfficiency
// turn raw usage records into presentation-ready numbers. Aggregate is a
// pure function invoked by presentation code, never by the engine itself
// during fan-out.
package stats

import (
	"sort"

	"github.com/marcus/ccsearch/internal/engine"
)

// Summary is the aggregated view over a completed result set.
type Summary struct {
	Total          int
	RoleCounts     map[string]int
	UniqueSessions int
	UniqueFiles    int
	UniqueProjects int
	EarliestTS     string
	LatestTS       string
	TopProjects    []ProjectCount
}

// ProjectCount pairs a project path with its result count, for the
// top-N most frequent projects.
type ProjectCount struct {
	ProjectPath string
	Count       int
}

// Aggregate computes a Summary over results. Uniqueness is tracked with
// hash sets keyed by exact string value; top-N is the top 5 projects by
// frequency, descending, ties broken by project path for determinism.
func Aggregate(results []engine.Result) Summary {
	roleCounts := make(map[string]int)
	sessions := make(map[string]struct{})
	files := make(map[string]struct{})
	projectCounts := make(map[string]int)

	var earliest, latest string

	for _, r := range results {
		roleCounts[r.RoleTag]++
		if r.SessionID != "" {
			sessions[r.SessionID] = struct{}{}
		}
		files[r.FilePath] = struct{}{}
		if r.ProjectPath != "" {
			projectCounts[r.ProjectPath]++
		}

		if r.Timestamp == "" {
			continue
		}
		if earliest == "" || r.Timestamp < earliest {
			earliest = r.Timestamp
		}
		if latest == "" || r.Timestamp > latest {
			latest = r.Timestamp
		}
	}

	return Summary{
		Total:          len(results),
		RoleCounts:     roleCounts,
		UniqueSessions: len(sessions),
		UniqueFiles:    len(files),
		UniqueProjects: len(projectCounts),
		EarliestTS:     earliest,
		LatestTS:       latest,
		TopProjects:    topN(projectCounts, 5),
	}
}

// topN returns the n most frequent entries of counts, descending by
// count, ties broken lexicographically by key.
func topN(counts map[string]int, n int) []ProjectCount {
	all := make([]ProjectCount, 0, len(counts))
	for k, c := range counts {
		all = append(all, ProjectCount{ProjectPath: k, Count: c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].ProjectPath < all[j].ProjectPath
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
