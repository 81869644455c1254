package bits

import (
	"fmt"
	"math"
)

// maxModularBytes bounds MC and UMC: ten 7-bit groups cover 64 bits.
const maxModularBytes = 10

// ReadMC reads a signed modular char: little-endian 7-bit groups with the
// high bit as continuation; bit 0x40 of the last byte is the sign.
func (c *Chain) ReadMC() (v int64, err error) {
	defer c.undo(c.pos, &err)
	var mag uint64
	for i := range maxModularBytes {
		b, err := c.ReadRC()
		if err != nil {
			return 0, err
		}
		shift := uint(7 * i)
		if b&0x80 == 0 {
			neg := b&0x40 != 0
			last := uint64(b & 0x3F)
			if shift >= 64 || (shift > 0 && last>>(64-shift) != 0) {
				return 0, fmt.Errorf("%w: MC longer than 64 bits", ErrOverflow)
			}
			mag |= last << shift
			switch {
			case neg && mag > 1<<63:
				return 0, fmt.Errorf("%w: MC -%#x", ErrOverflow, mag)
			case neg:
				return -int64(mag), nil
			case mag > math.MaxInt64:
				return 0, fmt.Errorf("%w: MC %#x", ErrOverflow, mag)
			}
			return int64(mag), nil
		}
		part := uint64(b & 0x7F)
		if shift >= 64 || (shift > 0 && part>>(64-shift) != 0) {
			return 0, fmt.Errorf("%w: MC longer than 64 bits", ErrOverflow)
		}
		mag |= part << shift
	}
	return 0, fmt.Errorf("%w: MC exceeds %d bytes", ErrOverflow, maxModularBytes)
}

// WriteMC writes a signed modular char.
func (c *Chain) WriteMC(v int64) error {
	u := uint64(v)
	var sign byte
	if v < 0 {
		u = -u
		sign = 0x40
	}
	out := make([]byte, 0, maxModularBytes)
	for {
		if u < 0x40 {
			out = append(out, byte(u)|sign)
			break
		}
		out = append(out, byte(u&0x7F)|0x80)
		u >>= 7
	}
	return c.writeFrom(out)
}

// ReadUMC reads an unsigned modular char.
func (c *Chain) ReadUMC() (v uint64, err error) {
	defer c.undo(c.pos, &err)
	for i := range maxModularBytes {
		b, err := c.ReadRC()
		if err != nil {
			return 0, err
		}
		part := uint64(b & 0x7F)
		shift := uint(7 * i)
		if shift > 0 && part>>(64-shift) != 0 {
			return 0, fmt.Errorf("%w: UMC longer than 64 bits", ErrOverflow)
		}
		v |= part << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: UMC exceeds %d bytes", ErrOverflow, maxModularBytes)
}

// WriteUMC writes an unsigned modular char.
func (c *Chain) WriteUMC(v uint64) error {
	out := make([]byte, 0, maxModularBytes)
	for v >= 0x80 {
		out = append(out, byte(v&0x7F)|0x80)
		v >>= 7
	}
	return c.writeFrom(append(out, byte(v)))
}

// maxModularWords bounds MS: three 15-bit words cover 32 bits.
const maxModularWords = 3

// ReadMS reads a modular short: little-endian 15-bit words with 0x8000 as
// continuation.
func (c *Chain) ReadMS() (v uint32, err error) {
	defer c.undo(c.pos, &err)
	var acc uint64
	for i := range maxModularWords {
		w, err := c.ReadRS()
		if err != nil {
			return 0, err
		}
		acc |= uint64(w&0x7FFF) << (15 * i)
		if w&0x8000 == 0 {
			if acc > math.MaxUint32 {
				return 0, fmt.Errorf("%w: MS %#x", ErrOverflow, acc)
			}
			return uint32(acc), nil
		}
	}
	return 0, fmt.Errorf("%w: MS exceeds %d words", ErrOverflow, maxModularWords)
}

// WriteMS writes a modular short.
func (c *Chain) WriteMS(v uint32) (err error) {
	defer c.undo(c.pos, &err)
	for v >= 0x8000 {
		if err := c.WriteRS(uint16(v&0x7FFF) | 0x8000); err != nil {
			return err
		}
		v >>= 15
	}
	return c.WriteRS(uint16(v))
}
