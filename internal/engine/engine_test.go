package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/ccsearch/internal/query"
)

func writeSession(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	projDir := filepath.Join(dir, ".claude", "projects", "-tmp-proj")
	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(projDir, name)
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const userLine = `{"type":"user","uuid":"u1","sessionId":"s1","timestamp":"2024-01-01T00:00:00Z","message":{"role":"user","content":"disk is full"}}`
const assistantLine = `{"type":"assistant","uuid":"u2","sessionId":"s1","timestamp":"2024-01-01T00:01:00Z","message":{"role":"assistant","content":"Everything OK"}}`
const malformedLine = `{"type":"user","uuid":`

func TestSearchBasicMatch(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.jsonl", []string{userLine, assistantLine})

	ast, perr := query.Parse("disk")
	if perr != nil {
		t.Fatal(perr)
	}

	summary, err := Search(context.Background(), filepath.Join(dir, ".claude/projects/-tmp-proj/*.jsonl"), ast, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("expected 1 result, got %d: %+v", len(summary.Results), summary.Results)
	}
	if summary.Results[0].UUID != "u1" {
		t.Fatalf("unexpected match: %+v", summary.Results[0])
	}
}

func TestSearchSkipsMalformedLinesSilently(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.jsonl", []string{malformedLine, userLine})

	ast, _ := query.Parse("disk")
	summary, err := Search(context.Background(), filepath.Join(dir, ".claude/projects/-tmp-proj/*.jsonl"), ast, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("decode failures must not surface as file errors, got %v", summary.Errors)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("expected 1 result despite the malformed line, got %d", len(summary.Results))
	}
}

func TestSearchMaxResultsTruncates(t *testing.T) {
	dir := t.TempDir()
	lines := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		lines = append(lines, userLine)
	}
	writeSession(t, dir, "a.jsonl", lines)

	max := 2
	ast, _ := query.Parse("disk")
	summary, err := Search(context.Background(), filepath.Join(dir, ".claude/projects/-tmp-proj/*.jsonl"), ast, Options{MaxResults: &max})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("expected exactly 2 results, got %d", len(summary.Results))
	}
	if !summary.Truncated {
		t.Fatal("expected Truncated to be true")
	}
	if summary.Total != 5 {
		t.Fatalf("expected total match count of 5 even though truncated, got %d", summary.Total)
	}
}

func TestSearchMaxResultsZeroCollectsNothingButCountsAll(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.jsonl", []string{userLine, userLine, userLine})

	zero := 0
	ast, _ := query.Parse("disk")
	summary, err := Search(context.Background(), filepath.Join(dir, ".claude/projects/-tmp-proj/*.jsonl"), ast, Options{MaxResults: &zero})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Results) != 0 {
		t.Fatalf("expected zero collected results, got %d", len(summary.Results))
	}
	if summary.Total != 3 {
		t.Fatalf("expected total_matches to stay unbounded at 3, got %d", summary.Total)
	}
}

func TestSearchNoFilesReturnsEmptySummary(t *testing.T) {
	dir := t.TempDir()
	ast, _ := query.Parse("anything")
	summary, err := Search(context.Background(), filepath.Join(dir, "*.jsonl"), ast, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Results) != 0 || summary.FilesSeen != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestSearchRoleFilterKeepsOnlyRequestedRole(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.jsonl", []string{userLine, assistantLine})

	ast, _ := query.Parse("Everything")
	summary, err := Search(context.Background(), filepath.Join(dir, ".claude/projects/-tmp-proj/*.jsonl"), ast, Options{RoleFilter: "assistant"})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Results) != 1 || summary.Results[0].RoleTag != "assistant" {
		t.Fatalf("unexpected results: %+v", summary.Results)
	}
}
