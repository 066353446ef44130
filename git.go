package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// defaultGitTimeout bounds each individual git query
const defaultGitTimeout = 30 * time.Second

// maxModifiedList is the number of status lines kept in a snapshot
const maxModifiedList = 10

// git runs a read-only git command in the specified directory and returns
// stdout without trailing whitespace. The command is killed after timeout
func git(ctx context.Context, timeout time.Duration, dir string, args ...string) (string, error) {
	if timeout <= 0 {
		timeout = defaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	return strings.TrimRight(string(out), " \t\r\n"), err
}

// isGitRepo checks if a directory has a git marker
func isGitRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, vcsMarker))
	return err == nil
}

// nonEmptyLines splits output into lines, dropping blank ones
func nonEmptyLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// getBranch returns the current branch name, "HEAD" if detached, or the
// unknown sentinel if the query fails
func getBranch(ctx context.Context, timeout time.Duration, path string) string {
	branch, err := git(ctx, timeout, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || branch == "" {
		return unknownBranch
	}
	return branch
}

// commitFieldSep separates fields in the last commit query so that
// subjects may contain any printable character
const commitFieldSep = "\x1f"

// getLastCommit returns the HEAD commit summary, or nil for a repository
// without commits
func getLastCommit(ctx context.Context, timeout time.Duration, path string) *Commit {
	out, err := git(ctx, timeout, path, "log", "-1", "--format=%H%x1f%s%x1f%ci")
	if err != nil || out == "" {
		return nil
	}
	parts := strings.SplitN(out, commitFieldSep, 3)
	commit := &Commit{Hash: parts[0]}
	if len(commit.Hash) > 8 {
		commit.Hash = commit.Hash[:8]
	}
	if len(parts) > 1 {
		commit.Message = parts[1]
	}
	if len(parts) > 2 {
		commit.Date = parts[2]
	}
	return commit
}

// getModified returns the porcelain status lines of the working tree
func getModified(ctx context.Context, timeout time.Duration, path string) []string {
	status, err := git(ctx, timeout, path, "status", "--porcelain")
	if err != nil {
		return nil
	}
	return nonEmptyLines(status)
}

// getUnpushed returns the number of commits ahead of the upstream branch.
// A failing query, most commonly because no upstream is configured,
// yields the noUpstream sentinel
func getUnpushed(ctx context.Context, timeout time.Duration, path string) int {
	out, err := git(ctx, timeout, path, "log", "@{u}..", "--oneline")
	if err != nil {
		return noUpstream
	}
	return len(nonEmptyLines(out))
}

// getStashCount returns the number of stash entries
func getStashCount(ctx context.Context, timeout time.Duration, path string) int {
	out, err := git(ctx, timeout, path, "stash", "list")
	if err != nil {
		return 0
	}
	return len(nonEmptyLines(out))
}

// getRemoteURL returns the origin remote URL, or nil if there is none
func getRemoteURL(ctx context.Context, timeout time.Duration, path string) *string {
	url, err := git(ctx, timeout, path, "remote", "get-url", "origin")
	if err != nil || url == "" {
		return nil
	}
	return &url
}

// getVcsStatus captures a best-effort snapshot of a git working copy. It
// returns nil when path is not a working copy. Each query fails
// independently and degrades to its sentinel
func getVcsStatus(ctx context.Context, timeout time.Duration, path string) *VcsStatus {
	if !isGitRepo(path) {
		return nil
	}

	status := &VcsStatus{
		Branch:          getBranch(ctx, timeout, path),
		LastCommit:      getLastCommit(ctx, timeout, path),
		UnpushedCommits: getUnpushed(ctx, timeout, path),
		StashCount:      getStashCount(ctx, timeout, path),
		Remote:          getRemoteURL(ctx, timeout, path),
	}

	modified := getModified(ctx, timeout, path)
	status.ModifiedFiles = len(modified)
	status.ModifiedList = modified
	if len(status.ModifiedList) > maxModifiedList {
		status.ModifiedList = status.ModifiedList[:maxModifiedList]
	}
	if status.ModifiedList == nil {
		status.ModifiedList = []string{}
	}

	return status
}
