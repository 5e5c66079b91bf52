package msbackup

import (
	"encoding/binary"
	"fmt"

	"github.com/javi11/msbackup/internal/util"
)

// DecodeFragment decodes one per-file fragment record.
//
// Layout: flag(1) sequence(LE16) unknown(LE16) path@5 pathLen@0x53, content
// from 0x80 to the end. Unlike the volume header, nothing here is fatal: a
// corrupted fragment should be skippable without killing the run, so every
// structural problem is recorded as a warning on the returned Fragment and
// the caller decides what to do with it (the Assembler refuses errored
// fragments, see Assembler.Add).
func DecodeFragment(data []byte) *Fragment {
	if len(data) < fragmentHeaderSize {
		return &Fragment{
			Path:     BadFilePath,
			Warnings: []string{fmt.Sprintf("short fragment record: %d bytes", len(data))},
		}
	}
	f := &Fragment{
		Last:     data[0] == flagLast,
		Sequence: binary.LittleEndian.Uint16(data[1:3]),
		Unknown:  binary.LittleEndian.Uint16(data[3:5]),
		Content:  data[fragmentHeaderSize:],
	}
	pathLen := int(data[0x53])
	if pathLen == 0 || pathLen > maxPathLen {
		f.Warnings = append(f.Warnings, fmt.Sprintf("unexpected file path len: %d", pathLen))
		f.Path = BadFilePath
	} else {
		raw := data[5 : 5+pathLen]
		// Trim needless trailing NUL
		if raw[len(raw)-1] == 0 {
			raw = raw[:len(raw)-1]
		}
		f.Path = util.DecodePath(raw)
	}
	if flag := data[0]; flag != flagNotLast && flag != flagLast {
		f.Warnings = append(f.Warnings, fmt.Sprintf("unexpected flag value 0x%02x", flag))
	}
	return f
}
