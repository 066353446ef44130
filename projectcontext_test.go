package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectContext(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, dir, ".env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Tool\nDoes things."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"tool"}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.rs"), []byte("fn main() {}"), 0o644))

	got := projectContext(dir)
	assert.Equal(t, `=== README ===
# Tool
Does things.

=== STRUCTURE ===
README.md
package.json
src/

=== package.json ===
{"name":"tool"}

=== src/main.rs ===
fn main() {}`, got)
}

func TestProjectContextLimits(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(strings.Repeat("r", 5000)), 0o644))
	for _, name := range keyFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Repeat("k", 2000)), 0o644))
	}

	got := projectContext(dir)
	assert.Equal(t, projectContextLimit, len([]rune(got)))
	assert.Contains(t, got, "=== README ===\n"+strings.Repeat("r", readmeContextLimit)+"\n\n")
	assert.NotContains(t, got, strings.Repeat("k", keyFileContextLimit+1))
}

func TestProjectContextStructureLimit(t *testing.T) {
	dir := t.TempDir()
	for i := range 40 {
		mkfile(t, dir, fmt.Sprintf("f%02d.txt", i))
	}

	got := projectContext(dir)
	assert.Contains(t, got, "f29.txt")
	assert.NotContains(t, got, "f30.txt")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
	assert.Equal(t, "hé", truncateRunes("héllo", 2))
	assert.Equal(t, "", truncateRunes("héllo", 0))
}
