package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// either operand is negative or the product would overflow int.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckRunBounds validates that count elements of elemSize bytes fit in a
// buffer of bufLen bytes starting at offset, and returns the end offset.
//
//	end, err := buf.CheckRunBounds(len(payload), 4, length, 4)
//	if err != nil {
//	    return fmt.Errorf("seq: %w", err)
//	}
func CheckRunBounds(bufLen, offset, count, elemSize int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset: %d", offset)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}

	total, ok := MulOverflowSafe(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	end, ok := AddOverflowSafe(offset, total)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, total)
	}
	if end > bufLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, bufLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
