package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	files := map[string]string{
		"README.md":    "# Tool\n",
		"package.json": `{"version":"1.0.0"}`,
	}
	writeFiles(t, a, files)
	writeFiles(t, b, files)

	fa := fingerprint(a)
	assert.Len(t, fa, 12)
	assert.Regexp(t, "^[0-9a-f]{12}$", fa)
	assert.Equal(t, fa, fingerprint(a))
	assert.Equal(t, fa, fingerprint(b))
}

func TestFingerprintEmptyDirectory(t *testing.T) {
	assert.Equal(t, fingerprint(t.TempDir()), fingerprint(t.TempDir()))
	assert.Len(t, fingerprint(t.TempDir()), 12)
}

func TestFingerprintTracksMarkerFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"go.mod": "module a\n"})
	before := fingerprint(dir)

	// Untracked files do not affect the fingerprint
	writeFiles(t, dir, map[string]string{"notes.txt": "anything"})
	assert.Equal(t, before, fingerprint(dir))

	// A single byte change in a tracked file does
	writeFiles(t, dir, map[string]string{"go.mod": "module b\n"})
	assert.NotEqual(t, before, fingerprint(dir))
}

func TestFingerprintReadsOnlyLeadingBytes(t *testing.T) {
	dir := t.TempDir()
	head := strings.Repeat("x", fingerprintReadLimit)
	writeFiles(t, dir, map[string]string{"main.go": head + "tail one"})
	before := fingerprint(dir)

	writeFiles(t, dir, map[string]string{"main.go": head + "tail two"})
	assert.Equal(t, before, fingerprint(dir))
}
