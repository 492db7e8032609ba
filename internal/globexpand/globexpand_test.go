package globexpand

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandPlainGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jsonl"))
	writeFile(t, filepath.Join(dir, "b.jsonl"))
	writeFile(t, filepath.Join(dir, "c.txt"))

	got, err := Expand(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}
}

func TestExpandRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "proj-a", "session1.jsonl"))
	writeFile(t, filepath.Join(dir, "proj-b", "nested", "session2.jsonl"))
	writeFile(t, filepath.Join(dir, "proj-a", "notes.md"))

	got, err := Expand(filepath.Join(dir, "**/*.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}
}

func TestExpandHomeTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	expanded, err := expandHome("~/foo/bar")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, "foo/bar")
	if expanded != want {
		t.Fatalf("got %q want %q", expanded, want)
	}
}

func TestExpandNoMatches(t *testing.T) {
	dir := t.TempDir()
	got, err := Expand(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
