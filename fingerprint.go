package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// fingerprintFiles are hashed in this order when present
var fingerprintFiles = []string{
	"README.md",
	"package.json",
	"Cargo.toml",
	"pyproject.toml",
	"go.mod",
	"main.py",
	"index.js",
	"main.rs",
	"main.go",
	"app.py",
}

const (
	// fingerprintReadLimit is the number of leading bytes hashed per file
	fingerprintReadLimit = 2000

	// fingerprintLength is the number of hex characters kept
	fingerprintLength = 12
)

// readHead returns up to n leading bytes of the file at path
func readHead(path string, n int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, n))
}

// fingerprint digests the leading bytes of the tracked marker files in dir.
// Missing and unreadable files are skipped, so the result only changes
// when tracked content changes
func fingerprint(dir string) string {
	h := xxhash.New()
	for _, name := range fingerprintFiles {
		data, err := readHead(filepath.Join(dir, name), fingerprintReadLimit)
		if err != nil {
			continue
		}
		h.Write(data)
	}
	return fmt.Sprintf("%016x", h.Sum64())[:fingerprintLength]
}
