package util

import "strings"

// DecodePath renders raw path bytes from a fragment record as text.
//
// The clean case is a plain printable-ASCII path and returns the bytes
// verbatim. Anything else (foreign encodings, embedded control bytes, plain
// corruption) falls back to byte-by-byte decoding where every non-printable
// byte becomes a three-character "%xx" escape with lowercase hex. The result
// is always representable text, so it stays usable as a reassembly key and
// an output path.
func DecodePath(raw []byte) string {
	clean := true
	for _, b := range raw {
		if !printable(b) {
			clean = false
			break
		}
	}
	if clean {
		return string(raw)
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		if printable(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0x0F])
		}
	}
	return sb.String()
}

const hexDigits = "0123456789abcdef"

// printable reports whether b is within the ASCII range and not a control
// character.
func printable(b byte) bool { return b >= 0x20 && b <= 0x7F }
