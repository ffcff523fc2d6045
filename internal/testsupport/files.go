package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path (and any missing parent directories) holding exactly
// size bytes of filler. A size <= 0 writes a single byte so the file is never
// empty; empty files read as "not yet written" to the stability probe.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	payload := bytes.Repeat([]byte{'x'}, int(size))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AppendBytes grows an existing file, simulating a copy still in progress.
func AppendBytes(t testing.TB, path string, n int) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s for append: %v", path, err)
	}
	defer f.Close()
	if _, err := f.Write(bytes.Repeat([]byte{'x'}, n)); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}
