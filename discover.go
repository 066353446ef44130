package main

import (
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ignoredDirs are never descended into, regardless of depth
var ignoredDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	".venv":         true,
	"dist":          true,
	"build":         true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"__pycache__":   true,
	".idea":         true,
	".vscode":       true,
}

// isIgnoredDir reports whether a directory with the given name is pruned
func isIgnoredDir(name string) bool {
	return strings.HasPrefix(name, ".") || ignoredDirs[name]
}

// depthOf returns the number of path elements between root and path
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// discover walks root and yields every directory below it, at most
// maxDepth levels deep, that looks like a project. Hidden and ignored
// directories are pruned. Each iteration performs a fresh walk
func discover(root string, maxDepth int, logger *slog.Logger) iter.Seq[string] {
	return func(yield func(string) bool) {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if logger != nil {
					logger.Warn("skipping unreadable directory", "path", path, "err", err)
				}
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.IsDir() {
				return nil
			}

			// The root itself is walked but never yielded or pruned by name
			if path == root {
				return nil
			}

			if isIgnoredDir(d.Name()) {
				return filepath.SkipDir
			}

			if depthOf(root, path) > maxDepth {
				return filepath.SkipDir
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return nil
			}
			if looksLikeProject(entryNames(entries)) {
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}
