// Package pathenc maps absolute project paths to the encoded directory
// names Claude Code uses under its projects directory; it does not decode
// them back.
package pathenc

import (
	"errors"
	"strings"
)

// ErrInvalidPath is returned by BelongsToProject when filePath contains
// no recognizable projects-directory segment.
var ErrInvalidPath = errors.New("pathenc: path contains no .claude/projects segment")

// projectsMarkers are the directory segments a session file's path may
// contain immediately above its per-project directory. Claude Code
// moved from the legacy ~/.claude/projects layout to the XDG
// ~/.config/claude/projects layout in v1.0.30+; both are recognized.
var projectsMarkers = []string{
	"/.claude/projects/",
	"/.config/claude/projects/",
}

// replacer performs the encoding substitution: every occurrence of
// / \ : * ? " < > | . _ becomes a hyphen. Encoding is not injective, so
// there is no general inverse; callers only ever need prefix matching
// against already-encoded directory names, never decoding back to a path.
var replacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	"|", "-",
	".", "-",
	"_", "-",
)

// Encode maps an absolute project path to its on-disk encoded directory
// name, e.g. "/Users/alice/src/proj" -> "-Users-alice-src-proj".
func Encode(path string) string {
	return replacer.Replace(path)
}

// ProjectDir returns the path component immediately under a recognized
// projects marker, e.g. given
// ".../.claude/projects/-Users-alice-proj/session.jsonl" it returns
// "-Users-alice-proj". The bool is false when filePath carries no
// recognized marker.
func ProjectDir(filePath string) (string, bool) {
	return extractProjectDir(filePath)
}

// extractProjectDir returns the path component immediately under a
// recognized projects marker, e.g. given
// ".../.claude/projects/-Users-alice-proj/session.jsonl" it returns
// "-Users-alice-proj". The bool is false when filePath carries no
// recognized marker.
func extractProjectDir(filePath string) (string, bool) {
	for _, marker := range projectsMarkers {
		idx := strings.Index(filePath, marker)
		if idx < 0 {
			continue
		}
		rest := filePath[idx+len(marker):]
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			return rest[:slash], true
		}
		return rest, true
	}
	return "", false
}

// BelongsToProject reports whether filePath's encoded project directory
// begins with the encoded form of projectPath. The prefix (not equality)
// check admits sibling/worktree nesting, e.g. a directory encoding
// "/repo-feature" belongs to project "/repo". Returns ErrInvalidPath when
// filePath has no projects-directory segment.
func BelongsToProject(filePath, projectPath string) (bool, error) {
	dir, ok := extractProjectDir(filePath)
	if !ok {
		return false, ErrInvalidPath
	}
	return strings.HasPrefix(dir, Encode(projectPath)), nil
}
