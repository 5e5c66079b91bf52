package msbackup

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildHeaderRecord builds a 128-byte volume identification record.
func buildHeaderRecord(flag byte, seq, year uint16, day, month byte) []byte {
	rec := make([]byte, HeaderRecordSize)
	rec[0] = flag
	binary.LittleEndian.PutUint16(rec[1:3], seq)
	binary.LittleEndian.PutUint16(rec[3:5], year)
	rec[5] = day
	rec[6] = month
	return rec
}

// buildFragmentRecord builds a fragment record carrying a NUL-terminated
// path, the way the original format writes them.
func buildFragmentRecord(t *testing.T, path string, seq uint16, last bool, content []byte) []byte {
	t.Helper()
	return buildFragmentRaw([]byte(path+"\x00"), seq, last, content)
}

// buildFragmentRaw is the low-level builder: rawPath goes in verbatim so
// tests can produce corrupt or non-ASCII path bytes.
func buildFragmentRaw(rawPath []byte, seq uint16, last bool, content []byte) []byte {
	rec := make([]byte, fragmentHeaderSize, fragmentHeaderSize+len(content))
	if last {
		rec[0] = flagLast
	}
	binary.LittleEndian.PutUint16(rec[1:3], seq)
	rec[0x53] = byte(len(rawPath))
	copy(rec[5:], rawPath)
	return append(rec, content...)
}

// fragment decodes a freshly built record, failing the test on unexpected
// decode warnings.
func fragment(t *testing.T, path string, seq uint16, last bool, content []byte) *Fragment {
	t.Helper()
	f := DecodeFragment(buildFragmentRecord(t, path, seq, last, content))
	if f.Errored() {
		t.Fatalf("unexpected decode warnings: %v", f.Warnings)
	}
	return f
}

// writeRecordFile places record bytes at dir/name.
func writeRecordFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return p
}
