package bits

import "errors"

var (
	// ErrTruncated indicates fewer bits remain than the primitive needs.
	ErrTruncated = errors.New("bits: truncated buffer")
	// ErrOutOfRange indicates a reserved tag, an unsupported length or a value
	// the target encoding cannot hold.
	ErrOutOfRange = errors.New("bits: value out of range")
	// ErrOverflow indicates a modular integer longer than its result type.
	ErrOverflow = errors.New("bits: overflow")
	// ErrCRCMismatch indicates a stored checksum differs from the computed one.
	ErrCRCMismatch = errors.New("bits: crc mismatch")
	// ErrOutOfMemory indicates a write would grow the buffer past its limit.
	ErrOutOfMemory = errors.New("bits: buffer limit exceeded")
)
