package handle

import "errors"

var (
	// ErrOverflow indicates a relative offset does not fit a signed 64-bit delta
	// or applying it wraps the handle space.
	ErrOverflow = errors.New("handle: offset overflow")
	// ErrInvalidCode indicates a reference code outside the defined set.
	ErrInvalidCode = errors.New("handle: invalid reference code")
	// ErrSize indicates a size nibble larger than eight bytes.
	ErrSize = errors.New("handle: size exceeds 8 bytes")
	// ErrTruncated indicates a raw handle shorter than its size nibble claims.
	ErrTruncated = errors.New("handle: truncated")
	// ErrNoCompanion indicates a relative handle without the object it is relative to.
	ErrNoCompanion = errors.New("handle: relative handle without companion")
)
