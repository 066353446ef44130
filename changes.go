package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// ChangeKind identifies what changed between two scans of a project
type ChangeKind string

const (
	ChangeNew      ChangeKind = "new"
	ChangeRemoved  ChangeKind = "removed"
	ChangeVersion  ChangeKind = "version"
	ChangeUnpushed ChangeKind = "unpushed"
	ChangeModified ChangeKind = "modified"
)

// Change is a difference detected between the previous and current scan
type Change struct {
	Project string     `json:"project"`
	Kind    ChangeKind `json:"kind"`
	From    *string    `json:"from,omitempty"`
	To      *string    `json:"to,omitempty"`
	Count   int        `json:"count,omitempty"`
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeNew:
		return fmt.Sprintf("new project: %s", c.Project)
	case ChangeRemoved:
		return fmt.Sprintf("removed project: %s", c.Project)
	case ChangeVersion:
		s := fmt.Sprintf("%s: version %s → %s", c.Project, valueOr(c.From, "none"), valueOr(c.To, "none"))
		if isDowngrade(c.From, c.To) {
			s += " (downgrade)"
		}
		return s
	case ChangeUnpushed:
		return fmt.Sprintf("%s: %d unpushed commit(s)", c.Project, c.Count)
	case ChangeModified:
		return fmt.Sprintf("%s: %d modified file(s)", c.Project, c.Count)
	default:
		return fmt.Sprintf("%s: %s", c.Project, c.Kind)
	}
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// canonicalSemver returns v in the form x/mod/semver expects, or "" if v
// is not a semantic version
func canonicalSemver(v *string) string {
	if v == nil {
		return ""
	}
	s := *v
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if !semver.IsValid(s) {
		return ""
	}
	return s
}

// isDowngrade reports whether both versions are semantic and to is lower
func isDowngrade(from, to *string) bool {
	f, t := canonicalSemver(from), canonicalSemver(to)
	if f == "" || t == "" {
		return false
	}
	return semver.Compare(t, f) < 0
}

func equalStrings(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func unpushedOf(s *VcsStatus) int {
	if s == nil {
		return 0
	}
	return s.UnpushedCommits
}

func modifiedOf(s *VcsStatus) int {
	if s == nil {
		return 0
	}
	return s.ModifiedFiles
}

// detectChanges compares the previous and current record of a project.
// A nil prev is a first sighting. Only transitions to a present version or
// to a positive count of pending work are reported
func detectChanges(name string, prev *ProjectRecord, curr ProjectRecord) []Change {
	if prev == nil {
		return []Change{{Project: name, Kind: ChangeNew}}
	}

	var changes []Change
	if curr.Version != nil && !equalStrings(prev.Version, curr.Version) {
		changes = append(changes, Change{Project: name, Kind: ChangeVersion, From: prev.Version, To: curr.Version})
	}
	if n := unpushedOf(curr.Git); n > 0 && n != unpushedOf(prev.Git) {
		changes = append(changes, Change{Project: name, Kind: ChangeUnpushed, Count: n})
	}
	if n := modifiedOf(curr.Git); n > 0 && n != modifiedOf(prev.Git) {
		changes = append(changes, Change{Project: name, Kind: ChangeModified, Count: n})
	}
	return changes
}

// changeLogEntry is one line of the change log
type changeLogEntry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Changes []Change  `json:"changes"`
}

// appendChangeLog appends the changes of one scan as a JSON line to path
func appendChangeLog(path string, at time.Time, changes []Change) error {
	if changes == nil {
		changes = []Change{}
	}
	line, err := json.Marshal(changeLogEntry{
		ID:      uuid.NewString(),
		Time:    at,
		Changes: changes,
	})
	if err != nil {
		return fmt.Errorf("failed to encode change log entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open change log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write change log: %w", err)
	}
	return nil
}
