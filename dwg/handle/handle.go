// Package handle models DWG handles: the compact references one record uses
// to point at another.
//
// A handle on disk is a code nibble, a size nibble and size value bytes.
// Codes 2..5 carry an absolute handle value together with the ownership
// semantics of the reference. Codes 6, 8, 0xA and 0xC are relative: the value
// is an offset from the handle of the object that contains the reference
// (its companion), which makes references to neighbouring objects one byte
// long.
package handle

import (
	"fmt"

	"github.com/joshuapare/dwgkit/internal/buf"
)

// Code is the reference kind stored in the high nibble of a handle byte.
type Code uint8

const (
	Own          Code = 0x0 // an object's own handle
	SoftOwner    Code = 0x2
	HardOwner    Code = 0x3
	SoftPointer  Code = 0x4
	HardPointer  Code = 0x5
	NextPlusOne  Code = 0x6 // companion + 1, value 0
	NextMinusOne Code = 0x8 // companion - 1, value 0
	PlusOffset   Code = 0xA // companion + value
	MinusOffset  Code = 0xC // companion - value

	// MaxSize is the widest handle value on disk, in bytes.
	MaxSize = 8
)

// Valid reports whether c is one of the defined codes.
func (c Code) Valid() bool {
	switch c {
	case Own, SoftOwner, HardOwner, SoftPointer, HardPointer,
		NextPlusOne, NextMinusOne, PlusOffset, MinusOffset:
		return true
	}
	return false
}

// Relative reports whether c is an offset from the companion object.
func (c Code) Relative() bool {
	return c == NextPlusOne || c == NextMinusOne || c == PlusOffset || c == MinusOffset
}

// Owner reports whether c expresses ownership (soft or hard).
func (c Code) Owner() bool { return c == SoftOwner || c == HardOwner }

// Hard reports whether c is a hard owner or hard pointer.
func (c Code) Hard() bool { return c == HardOwner || c == HardPointer }

func (c Code) String() string {
	switch c {
	case Own:
		return "own"
	case SoftOwner:
		return "soft-owner"
	case HardOwner:
		return "hard-owner"
	case SoftPointer:
		return "soft-pointer"
	case HardPointer:
		return "hard-pointer"
	case NextPlusOne:
		return "+1"
	case NextMinusOne:
		return "-1"
	case PlusOffset:
		return "+N"
	case MinusOffset:
		return "-N"
	}
	return fmt.Sprintf("code(%#x)", uint8(c))
}

// Handle is a decoded handle. Size mirrors the on-disk width and is always
// the number of significant bytes of Value; use New or Normalize to build one.
type Handle struct {
	Code  Code
	Size  uint8
	Value uint64
}

// New returns a handle with Size derived from value.
func New(code Code, value uint64) Handle {
	return Handle{Code: code, Size: SizeOf(value), Value: value}
}

// SizeOf returns the number of significant bytes of v (0 for v == 0).
func SizeOf(v uint64) uint8 {
	return uint8(buf.SignificantBytes(v))
}

// IsNull reports whether h carries no reference. Relative +1/-1 handles
// have value 0 but still reference an object.
func (h Handle) IsNull() bool {
	return h.Value == 0 && !h.Code.Relative()
}

// Fixup recomputes Size from Value.
func (h Handle) Fixup() Handle {
	h.Size = SizeOf(h.Value)
	return h
}

// String formats h as code.size.value in hex, the notation used by DWG
// dumps, e.g. "5.1.1F".
func (h Handle) String() string {
	return fmt.Sprintf("%X.%d.%X", uint8(h.Code), h.Size, h.Value)
}
