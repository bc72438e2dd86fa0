// Package safe converts between integer widths with explicit range checks.
package safe

import (
	"fmt"
	"math"
)

// Integer covers the integer types the converters accept.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Uint64 converts v to uint64, rejecting negative values.
func Uint64[T Integer](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Uint32 converts v to uint32, rejecting negative values and values above
// the uint32 maximum.
func Uint32[T Integer](v T) (uint32, error) {
	u, err := Uint64(v)
	if err != nil || u > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(u), nil
}
