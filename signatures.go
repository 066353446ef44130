package main

import (
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// signature maps an ecosystem tag to the marker files that identify it.
// Patterns are either exact file names or globs matched against the
// entries of a single directory
type signature struct {
	Tag      string
	Patterns []string
}

// signatures is iterated in order, so detected types are always reported
// in the same order
var signatures = []signature{
	{Tag: "node", Patterns: []string{"package.json"}},
	{Tag: "python", Patterns: []string{"requirements.txt", "setup.py", "pyproject.toml", "Pipfile"}},
	{Tag: "rust", Patterns: []string{"Cargo.toml"}},
	{Tag: "go", Patterns: []string{"go.mod"}},
	{Tag: "swift", Patterns: []string{"Package.swift", "*.xcodeproj", "*.xcworkspace"}},
	{Tag: "ruby", Patterns: []string{"Gemfile"}},
	{Tag: "java", Patterns: []string{"pom.xml", "build.gradle"}},
	{Tag: "php", Patterns: []string{"composer.json"}},
	{Tag: "dotnet", Patterns: []string{"*.csproj", "*.sln"}},
}

// vcsMarker is the entry whose presence makes a directory a git working
// copy. Linked worktrees have a .git file rather than a directory
const vcsMarker = ".git"

// readEntryNames returns the names of the entries directly inside dir.
// Unreadable directories have no entries
func readEntryNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	return entryNames(entries)
}

func entryNames(entries []fs.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// matchesPattern reports whether any name matches pattern. Names without
// glob meta characters match only themselves
func matchesPattern(names []string, pattern string) bool {
	for _, name := range names {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// matchedTypes returns the tags whose signatures match names, in catalog
// order. The first matching pattern of a tag is enough
func matchedTypes(names []string) []string {
	var types []string
	for _, sig := range signatures {
		for _, pattern := range sig.Patterns {
			if matchesPattern(names, pattern) {
				types = append(types, sig.Tag)
				break
			}
		}
	}
	return types
}

// hasVcsMarker reports whether names include the git marker
func hasVcsMarker(names []string) bool {
	for _, name := range names {
		if name == vcsMarker {
			return true
		}
	}
	return false
}

// looksLikeProject reports whether a directory with the given entries is a
// project: a git working copy or a match for at least one signature
func looksLikeProject(names []string) bool {
	return hasVcsMarker(names) || len(matchedTypes(names)) > 0
}

// detectTypes returns the ecosystem tags of dir, or the unknown sentinel
// when no signature matches
func detectTypes(dir string) []string {
	types := matchedTypes(readEntryNames(dir))
	if len(types) == 0 {
		return []string{unknownType}
	}
	return types
}
