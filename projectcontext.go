package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var readmeNames = []string{"README.md", "README.txt", "README", "readme.md"}

var keyFiles = []string{
	"main.py", "app.py", "index.js", "index.ts", "main.rs", "main.go",
	"App.tsx", "App.vue", "app.rb", "Main.java", "Program.cs",
	"package.json", "Cargo.toml", "pyproject.toml",
}

const (
	readmeContextLimit  = 3000
	keyFileContextLimit = 1500
	structureEntryLimit = 30
	projectContextLimit = 8000
)

// truncateRunes shortens s to at most n runes
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// projectContext builds the text handed to an analysis provider: the
// README, the top level layout and the head of well known entry points
func projectContext(dir string) string {
	var sections []string

	for _, name := range readmeNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		sections = append(sections, "=== README ===\n"+truncateRunes(string(data), readmeContextLimit))
		break
	}

	var layout []string
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if e.IsDir() {
				layout = append(layout, e.Name()+"/")
			} else {
				layout = append(layout, e.Name())
			}
			if len(layout) == structureEntryLimit {
				break
			}
		}
	}
	sections = append(sections, "=== STRUCTURE ===\n"+strings.Join(layout, "\n"))

	for _, prefix := range []string{"", "src"} {
		for _, name := range keyFiles {
			data, err := os.ReadFile(filepath.Join(dir, prefix, name))
			if err != nil {
				continue
			}
			label := name
			if prefix != "" {
				label = prefix + "/" + name
			}
			sections = append(sections, fmt.Sprintf("=== %s ===\n%s", label, truncateRunes(string(data), keyFileContextLimit)))
		}
	}

	return truncateRunes(strings.Join(sections, "\n\n"), projectContextLimit)
}
