// Package globexpand resolves a file pattern into a concrete file list. It
// supports a leading "~/" home expansion and a trailing "**/*.jsonl"
// recursive-descent pattern, generalizing the directory-walk style of
// discovery.go's DiscoverClaudeProjects to an arbitrary glob pattern
// instead of a single hardcoded projects layout.
package globexpand

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Expand resolves pattern into a sorted, deduplicated list of matching
// file paths. A leading "~" is expanded against the user's home
// directory. A pattern ending in "/**/*.jsonl" walks every subdirectory
// of the prefix and collects .jsonl files, since filepath.Glob has no
// recursive-descent operator of its own. Any other pattern is passed
// straight to filepath.Glob.
func Expand(pattern string) ([]string, error) {
	pattern, err := expandHome(pattern)
	if err != nil {
		return nil, err
	}

	const recursiveSuffix = "/**/*.jsonl"
	if strings.HasSuffix(pattern, recursiveSuffix) {
		root := strings.TrimSuffix(pattern, recursiveSuffix)
		return walkJSONL(root)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func expandHome(pattern string) (string, error) {
	if pattern != "~" && !strings.HasPrefix(pattern, "~/") {
		return pattern, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if pattern == "~" {
		return home, nil
	}
	return filepath.Join(home, pattern[2:]), nil
}

// walkJSONL collects every *.jsonl file under root, at any depth,
// skipping directories and entries that error on stat (mirroring
// discovery.go's tolerant os.ReadDir error handling: a single unreadable
// directory does not abort the whole walk).
func walkJSONL(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Skip the unreadable entry, keep walking its siblings.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".jsonl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
