package msbackup

import (
	"encoding/binary"
	"fmt"
)

// DecodeVolumeHeader decodes a 128-byte volume identification record.
//
// Layout: flag(1) sequence(LE16) year(LE16) day(1) month(1), bytes 7..127
// reserved. The flag must be exactly 0x00 (not last) or 0xFF (last); anything
// else means the record is not a volume header at all and decoding aborts.
// Non-zero reserved bytes are tolerated but recorded as warnings.
func DecodeVolumeHeader(data []byte) (*VolumeHeader, error) {
	if len(data) != HeaderRecordSize {
		return nil, fmt.Errorf("%w: record size %d, want %d", ErrBadHeader, len(data), HeaderRecordSize)
	}
	flag := data[0]
	if flag != flagNotLast && flag != flagLast {
		return nil, fmt.Errorf("%w: flag byte 0x%02x", ErrBadHeader, flag)
	}
	h := &VolumeHeader{
		Last:     flag == flagLast,
		Sequence: binary.LittleEndian.Uint16(data[1:3]),
		Year:     binary.LittleEndian.Uint16(data[3:5]),
		Day:      data[5],
		Month:    data[6],
	}
	for i := 7; i < len(data); i++ {
		if data[i] != 0 {
			h.Warnings = append(h.Warnings, fmt.Sprintf("unexpected non-zero at %d: %d", i, data[i]))
		}
	}
	return h, nil
}
