package msbackup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists assembled files under a single output root. It remembers
// what it wrote per normalized path so a later rewrite with different bytes
// can be flagged; identical rewrites stay silent.
type Writer struct {
	root     string
	written  map[string][]byte
	warnings []string
}

// NewWriter returns a Writer rooted at dir. The directory itself is created
// lazily on first write.
func NewWriter(dir string) *Writer {
	return &Writer{root: dir, written: make(map[string][]byte)}
}

// NormalizePath maps a decoded logical path to its output form: lower-cased,
// backslashes replaced with forward slashes, and at most one leading slash
// stripped.
func NormalizePath(logical string) string {
	p := strings.ToLower(strings.ReplaceAll(logical, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}

// Write stores content at the normalized form of logical under the output
// root, creating parent directories as needed. It returns the normalized
// path actually used.
func (w *Writer) Write(logical string, content []byte) (string, error) {
	norm := NormalizePath(logical)
	full := filepath.Join(w.root, filepath.FromSlash(norm))
	if dir := filepath.Dir(full); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return norm, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return norm, fmt.Errorf("write %s: %w", norm, err)
	}
	if before, ok := w.written[norm]; ok && !bytes.Equal(before, content) {
		w.warnings = append(w.warnings, fmt.Sprintf("content changed on %s", norm))
	}
	w.written[norm] = content
	return norm, nil
}

// Warnings returns the rewrite-mismatch findings collected so far.
func (w *Writer) Warnings() []string { return w.warnings }
