// Package buf contains bounds and sizing helpers shared by the bit codec and
// the object map decoder.
package buf

import (
	"fmt"
	"math"
	"math/bits"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on overflow.
// count * elementSize calculations for fixed-width runs go through here.
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

// BitsLeft returns how many bits remain in a buffer of byteLen bytes when the
// cursor sits at bit position pos. Positions past the end yield 0.
func BitsLeft(byteLen int, pos int64) int64 {
	total := int64(byteLen) * 8
	if pos < 0 || pos >= total {
		return 0
	}
	return total - pos
}

// CheckBits validates that n bits can be consumed from a buffer of byteLen
// bytes starting at bit position pos.
func CheckBits(byteLen int, pos int64, n int64) error {
	if pos < 0 {
		return fmt.Errorf("negative position: %d", pos)
	}
	if n < 0 {
		return fmt.Errorf("negative bit count: %d", n)
	}
	end, ok := AddOverflowSafe(pos, n)
	if !ok {
		return fmt.Errorf("overflow: pos=%d + bits=%d", pos, n)
	}
	if end > int64(byteLen)*8 {
		return fmt.Errorf("bounds: end=%d > len=%d bits", end, int64(byteLen)*8)
	}
	return nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(int64(off), int64(n))
	if !ok || end > int64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// SignificantBytes returns the number of bytes needed to hold v, 0 for v == 0.
func SignificantBytes(v uint64) int {
	return (bits.Len64(v) + 7) / 8
}

// GrowSize returns the capacity to allocate so that need bytes fit. The
// buffer at least doubles, and never grows by less than chunk. It reports
// false when need exceeds limit; otherwise the result is capped at limit.
func GrowSize(current, need, chunk, limit int) (int, bool) {
	if need <= current {
		return current, true
	}
	if need > limit {
		return 0, false
	}
	size, ok := AddOverflowSafe(int64(current), int64(max(current, chunk)))
	if !ok || size > int64(limit) {
		size = int64(limit)
	}
	return max(int(size), need), true
}
