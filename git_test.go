package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"4d63.com/testcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGitTimeout = 10 * time.Second

func TestGetVcsStatusNotARepo(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, getVcsStatus(context.Background(), testGitTimeout, dir))
}

func TestGetVcsStatusEmptyRepo(t *testing.T) {
	setupGit(t)
	dir := testcli.MkdirTemp(t)
	testcli.Chdir(t, dir)
	testcli.Exec(t, "git init")

	status := getVcsStatus(context.Background(), testGitTimeout, dir)
	require.NotNil(t, status)
	assert.Nil(t, status.LastCommit)
	assert.Equal(t, noUpstream, status.UnpushedCommits)
	assert.Equal(t, 0, status.ModifiedFiles)
	assert.Equal(t, []string{}, status.ModifiedList)
	assert.Equal(t, 0, status.StashCount)
	assert.Nil(t, status.Remote)
}

func TestGetVcsStatusModifiedFiles(t *testing.T) {
	setupGit(t)
	dir := testcli.MkdirTemp(t)
	testcli.Chdir(t, dir)
	testcli.Exec(t, "git init")
	writeFile(t, "go.mod", []byte("module example\n"))
	testcli.Exec(t, "git add .")
	testcli.Exec(t, "git commit -m 'Initial commit'")

	for i := range 12 {
		writeFile(t, fmt.Sprintf("file%02d.txt", i), []byte("content"))
	}

	status := getVcsStatus(context.Background(), testGitTimeout, dir)
	require.NotNil(t, status)
	assert.Equal(t, "main", status.Branch)
	assert.Equal(t, 12, status.ModifiedFiles)
	require.Len(t, status.ModifiedList, maxModifiedList)
	assert.Equal(t, "?? file00.txt", status.ModifiedList[0])
	assert.Equal(t, "?? file09.txt", status.ModifiedList[9])
}

func TestGetVcsStatusCommitAndStash(t *testing.T) {
	setupGit(t)
	dir := testcli.MkdirTemp(t)
	testcli.Chdir(t, dir)
	testcli.Exec(t, "git init")
	testcli.Exec(t, "git remote add origin https://example.com/repo.git")
	writeFile(t, "Cargo.toml", []byte("[package]\n"))
	testcli.Exec(t, "git add .")
	testcli.Exec(t, "git commit -m 'Fix a|b parsing'")
	head := gitExec(t, "git rev-parse HEAD")

	writeFile(t, "Cargo.toml", []byte("[package]\nname = \"x\"\n"))
	testcli.Exec(t, "git stash")

	status := getVcsStatus(context.Background(), testGitTimeout, dir)
	require.NotNil(t, status)
	require.NotNil(t, status.LastCommit)
	assert.Equal(t, head[:8], status.LastCommit.Hash)
	assert.Equal(t, "Fix a|b parsing", status.LastCommit.Message)
	assert.NotEmpty(t, status.LastCommit.Date)
	assert.Equal(t, 1, status.StashCount)
	assert.Equal(t, 0, status.ModifiedFiles)
	require.NotNil(t, status.Remote)
	assert.Equal(t, "https://example.com/repo.git", *status.Remote)
	// The remote was never fetched, so there is no upstream
	assert.Equal(t, noUpstream, status.UnpushedCommits)
}

func TestGetVcsStatusDetachedHead(t *testing.T) {
	setupGit(t)
	dir := testcli.MkdirTemp(t)
	testcli.Chdir(t, dir)
	testcli.Exec(t, "git init")
	testcli.Exec(t, "git commit --allow-empty -m 'First'")
	testcli.Exec(t, "git commit --allow-empty -m 'Second'")
	testcli.Exec(t, "git checkout --detach HEAD~1")

	status := getVcsStatus(context.Background(), testGitTimeout, dir)
	require.NotNil(t, status)
	assert.Equal(t, "HEAD", status.Branch)
	assert.Equal(t, "First", status.LastCommit.Message)
}

func TestGetVcsStatusBrokenRepo(t *testing.T) {
	dir := t.TempDir()
	// A .git file that points nowhere makes every query fail
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /nonexistent\n"), 0o644))

	status := getVcsStatus(context.Background(), testGitTimeout, dir)
	require.NotNil(t, status)
	assert.Equal(t, "unknown", status.Branch)
	assert.Nil(t, status.LastCommit)
	assert.Equal(t, noUpstream, status.UnpushedCommits)
	assert.Equal(t, 0, status.ModifiedFiles)
	assert.Equal(t, []string{}, status.ModifiedList)
	assert.Nil(t, status.Remote)
}

func TestNonEmptyLines(t *testing.T) {
	assert.Nil(t, nonEmptyLines(""))
	assert.Equal(t, []string{" M a", "?? b"}, nonEmptyLines(" M a\n\n?? b\n"))
}
