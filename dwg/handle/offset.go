package handle

import (
	"fmt"
	"math"
)

// Normalize picks the cheapest encoding of a reference to candidate from an
// object whose own handle value is companion:
//
//	candidate == companion+1  ->  NextPlusOne,  value 0
//	candidate == companion-1  ->  NextMinusOne, value 0
//	candidate >  companion    ->  PlusOffset,   value candidate-companion
//	candidate <  companion    ->  MinusOffset,  value companion-candidate
//
// The fallback absolute code carrying candidate verbatim is used when relative
// encoding is not allowed (pre-R13 files) or when there is no delta to take.
// Deltas whose magnitude does not fit a signed 64-bit offset fail with
// ErrOverflow.
func Normalize(fallback Code, candidate, companion uint64, relative bool) (Handle, error) {
	if fallback.Relative() || !fallback.Valid() {
		return Handle{}, fmt.Errorf("%w: fallback %s", ErrInvalidCode, fallback)
	}
	if !relative || companion == 0 || candidate == 0 || candidate == companion {
		return New(fallback, candidate), nil
	}
	switch {
	case candidate > companion:
		delta := candidate - companion
		if delta > math.MaxInt64 {
			return Handle{}, fmt.Errorf("%w: +%#x", ErrOverflow, delta)
		}
		if delta == 1 {
			return New(NextPlusOne, 0), nil
		}
		return New(PlusOffset, delta), nil
	default:
		delta := companion - candidate
		if delta > math.MaxInt64 {
			return Handle{}, fmt.Errorf("%w: -%#x", ErrOverflow, delta)
		}
		if delta == 1 {
			return New(NextMinusOne, 0), nil
		}
		return New(MinusOffset, delta), nil
	}
}

// Absolute returns the file-global handle value h refers to, applying a
// relative offset to companion. Absolute codes return h.Value unchanged.
func Absolute(h Handle, companion uint64) (uint64, error) {
	if !h.Code.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCode, h.Code)
	}
	if !h.Code.Relative() {
		return h.Value, nil
	}
	if companion == 0 {
		return 0, ErrNoCompanion
	}
	switch h.Code {
	case NextPlusOne:
		if companion == math.MaxUint64 {
			return 0, fmt.Errorf("%w: %#x+1", ErrOverflow, companion)
		}
		return companion + 1, nil
	case NextMinusOne:
		return companion - 1, nil
	case PlusOffset:
		if h.Value > math.MaxUint64-companion {
			return 0, fmt.Errorf("%w: %#x+%#x", ErrOverflow, companion, h.Value)
		}
		return companion + h.Value, nil
	default:
		if h.Value > companion {
			return 0, fmt.Errorf("%w: %#x-%#x", ErrOverflow, companion, h.Value)
		}
		return companion - h.Value, nil
	}
}
