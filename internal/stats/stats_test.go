package stats

import (
	"testing"

	"github.com/marcus/ccsearch/internal/engine"
)

func TestAggregateCounts(t *testing.T) {
	results := []engine.Result{
		{RoleTag: "user", SessionID: "s1", FilePath: "a.jsonl", ProjectPath: "-proj-a", Timestamp: "2024-01-02T00:00:00Z"},
		{RoleTag: "assistant", SessionID: "s1", FilePath: "a.jsonl", ProjectPath: "-proj-a", Timestamp: "2024-01-03T00:00:00Z"},
		{RoleTag: "user", SessionID: "s2", FilePath: "b.jsonl", ProjectPath: "-proj-b", Timestamp: "2024-01-01T00:00:00Z"},
	}

	s := Aggregate(results)
	if s.Total != 3 {
		t.Fatalf("expected total 3, got %d", s.Total)
	}
	if s.RoleCounts["user"] != 2 || s.RoleCounts["assistant"] != 1 {
		t.Fatalf("unexpected role counts: %+v", s.RoleCounts)
	}
	if s.UniqueSessions != 2 {
		t.Fatalf("expected 2 unique sessions, got %d", s.UniqueSessions)
	}
	if s.UniqueFiles != 2 {
		t.Fatalf("expected 2 unique files, got %d", s.UniqueFiles)
	}
	if s.UniqueProjects != 2 {
		t.Fatalf("expected 2 unique projects, got %d", s.UniqueProjects)
	}
	if s.EarliestTS != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected earliest: %s", s.EarliestTS)
	}
	if s.LatestTS != "2024-01-03T00:00:00Z" {
		t.Fatalf("unexpected latest: %s", s.LatestTS)
	}
}

func TestAggregateTopProjects(t *testing.T) {
	var results []engine.Result
	for i := 0; i < 3; i++ {
		results = append(results, engine.Result{ProjectPath: "-proj-a"})
	}
	results = append(results, engine.Result{ProjectPath: "-proj-b"})

	s := Aggregate(results)
	if len(s.TopProjects) != 2 {
		t.Fatalf("expected 2 project entries, got %+v", s.TopProjects)
	}
	if s.TopProjects[0].ProjectPath != "-proj-a" || s.TopProjects[0].Count != 3 {
		t.Fatalf("expected -proj-a first with count 3, got %+v", s.TopProjects[0])
	}
}

func TestAggregateIgnoresMissingTimestamps(t *testing.T) {
	results := []engine.Result{
		{RoleTag: "summary", SessionID: "s1"},
	}
	s := Aggregate(results)
	if s.EarliestTS != "" || s.LatestTS != "" {
		t.Fatalf("expected empty timestamps for summary-only input, got %+v", s)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.Total != 0 || len(s.TopProjects) != 0 {
		t.Fatalf("expected zero-value summary, got %+v", s)
	}
}
