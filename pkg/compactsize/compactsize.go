// Package compactsize implements the variable-length unsigned integer
// used as a length/count prefix throughout the Bitcoin wire format.
package compactsize

import (
	"encoding/binary"
	"fmt"
)

// Marker bytes for the multi-byte encodings.
const (
	marker16 = 0xfd
	marker32 = 0xfe
	marker64 = 0xff
)

// MaxSize is the largest possible encoded width of a compact size value.
const MaxSize = 9

// PrefixSize reports the total encoded width of a compact size value,
// including the marker byte, given only its first byte.
func PrefixSize(first byte) int {
	switch first {
	case marker16:
		return 3
	case marker32:
		return 5
	case marker64:
		return 9
	default:
		return 1
	}
}

// Encode returns the canonical compact size encoding of v.
func Encode(v uint64) []byte {
	switch {
	case v < marker16:
		return []byte{byte(v)}
	case v <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = marker16
		binary.LittleEndian.PutUint16(buf[1:], uint16(v))
		return buf
	case v <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = marker32
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = marker64
		binary.LittleEndian.PutUint64(buf[1:], v)
		return buf
	}
}

// Decode reads a compact size value from the start of buf and returns the
// value together with the number of bytes consumed.
func Decode(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, fmt.Errorf("decode compact size: empty input")
	}

	width := PrefixSize(buf[0])
	if len(buf) < width {
		return 0, 0, fmt.Errorf("decode compact size: need %d bytes, have %d", width, len(buf))
	}

	switch width {
	case 1:
		return uint64(buf[0]), 1, nil
	case 3:
		return uint64(binary.LittleEndian.Uint16(buf[1:3])), 3, nil
	case 5:
		return uint64(binary.LittleEndian.Uint32(buf[1:5])), 5, nil
	default:
		return binary.LittleEndian.Uint64(buf[1:9]), 9, nil
	}
}
