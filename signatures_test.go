package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchedTypes(t *testing.T) {
	tests := []struct {
		names []string
		want  []string
	}{
		{names: []string{"package.json"}, want: []string{"node"}},
		{names: []string{"Cargo.toml", "package.json"}, want: []string{"node", "rust"}},
		{names: []string{"pyproject.toml", "requirements.txt", "setup.py"}, want: []string{"python"}},
		{names: []string{"go.mod", "go.sum", "main.go"}, want: []string{"go"}},
		{names: []string{"App.xcworkspace"}, want: []string{"swift"}},
		{names: []string{"Service.csproj", "Dockerfile"}, want: []string{"dotnet"}},
		{names: []string{"Gemfile", "composer.json", "pom.xml"}, want: []string{"ruby", "java", "php"}},
		{names: []string{"README.md", ".git"}, want: nil},
		{names: nil, want: nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchedTypes(tt.names), "names: %v", tt.names)
	}
}

func TestMatchesPatternIsExact(t *testing.T) {
	assert.True(t, matchesPattern([]string{"go.mod"}, "go.mod"))
	assert.False(t, matchesPattern([]string{"go.mod.bak"}, "go.mod"))
	assert.False(t, matchesPattern([]string{"sub/x.csproj"}, "*.csproj"))
	assert.True(t, matchesPattern([]string{"x.csproj"}, "*.csproj"))
}

func TestLooksLikeProject(t *testing.T) {
	assert.True(t, looksLikeProject([]string{".git"}))
	assert.True(t, looksLikeProject([]string{"Pipfile"}))
	assert.False(t, looksLikeProject([]string{"notes.txt", "docs"}))
}

func TestDetectTypes(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, []string{"unknown"}, detectTypes(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), nil, 0o644))
	assert.Equal(t, []string{"node", "java"}, detectTypes(dir))

	assert.Equal(t, []string{"unknown"}, detectTypes(filepath.Join(dir, "missing")))
}
