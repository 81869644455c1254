package handle

import "fmt"

// EncodedLen returns the number of bytes Encode produces for h.
func EncodedLen(h Handle) int {
	return 1 + int(SizeOf(h.Value))
}

// Encode returns the on-disk form of h: one byte holding code<<4|size, then
// the significant value bytes most significant first.
func Encode(h Handle) []byte {
	return AppendEncode(nil, h)
}

// AppendEncode appends the on-disk form of h to dst.
func AppendEncode(dst []byte, h Handle) []byte {
	size := SizeOf(h.Value)
	dst = append(dst, byte(h.Code)<<4|size)
	for i := int(size) - 1; i >= 0; i-- {
		dst = append(dst, byte(h.Value>>(8*uint(i))))
	}
	return dst
}

// Decode parses a handle from the start of raw and returns it with the
// number of bytes consumed.
func Decode(raw []byte) (Handle, int, error) {
	if len(raw) == 0 {
		return Handle{}, 0, ErrTruncated
	}
	code, size := Code(raw[0]>>4), raw[0]&0x0F
	if size > MaxSize {
		return Handle{}, 0, fmt.Errorf("%w: %d", ErrSize, size)
	}
	if len(raw) < 1+int(size) {
		return Handle{}, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, 1+int(size), len(raw))
	}
	var v uint64
	for _, b := range raw[1 : 1+int(size)] {
		v = v<<8 | uint64(b)
	}
	return Handle{Code: code, Size: size, Value: v}, 1 + int(size), nil
}
