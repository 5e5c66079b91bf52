package msbackup

import "errors"

// Record layout constants for the MSDOS 2.x BACKUP format.
const (
	// HeaderRecordSize is the exact size of a volume identification record.
	HeaderRecordSize = 128

	// fragmentHeaderSize is the metadata region preceding fragment content.
	fragmentHeaderSize = 0x80

	flagNotLast = 0x00
	flagLast    = 0xFF

	// maxPathLen is the largest path length the format can legitimately carry.
	maxPathLen = 78

	// BadFilePath is the sentinel logical path substituted when a fragment's
	// path metadata is unusable. Fragments carrying it never enter reassembly.
	BadFilePath = "bad_file"
)

// VolumeHeader is the decoded identification record of one backup volume.
type VolumeHeader struct {
	Last     bool   // volume is the final one of the backup set
	Sequence uint16 // 1-based position of the volume in the set
	Year     uint16
	Day      uint8
	Month    uint8
	Warnings []string // non-fatal validation findings, in record order
}

// Fragment is one decoded per-file record: a slice of a (possibly split)
// file plus the metadata needed to reassemble it.
type Fragment struct {
	Last     bool   // no fragment with a higher sequence exists for this path
	Sequence uint16 // 1-based position of this fragment within its file
	Unknown  uint16 // reserved field, carried through undecoded
	Path     string // decoded logical path, reassembly key
	Content  []byte // raw file bytes (everything past the metadata region)
	Warnings []string
}

// IsComplete reports whether this fragment is a whole file by itself.
// Single-fragment files bypass pending state entirely.
func (f *Fragment) IsComplete() bool { return f.Last && f.Sequence == 1 }

// Errored reports whether decoding recorded any warning. Errored fragments
// are excluded from reassembly so corrupt metadata cannot pollute a
// legitimate file sharing the same (possibly sentinel) path.
func (f *Fragment) Errored() bool { return len(f.Warnings) > 0 }

// ErrBadHeader reports a volume identification record that is structurally
// unrecognized (wrong size or unknown flag byte).
var ErrBadHeader = errors.New("unrecognized volume identification record")
