package bits

import "fmt"

// ReadB reads a single bit.
func (c *Chain) ReadB() (bool, error) {
	v, err := c.readBits(1)
	return v == 1, err
}

// WriteB writes a single bit.
func (c *Chain) WriteB(v bool) error {
	var b uint64
	if v {
		b = 1
	}
	return c.writeBits(b, 1)
}

// ReadBB reads two bits.
func (c *Chain) ReadBB() (uint8, error) {
	v, err := c.readBits(2)
	return uint8(v), err
}

// WriteBB writes two bits. Values above 3 fail with ErrOutOfRange.
func (c *Chain) WriteBB(v uint8) error { return c.writeSmall(uint64(v), 2) }

// Read3B reads three bits.
func (c *Chain) Read3B() (uint8, error) {
	v, err := c.readBits(3)
	return uint8(v), err
}

// Write3B writes three bits.
func (c *Chain) Write3B(v uint8) error { return c.writeSmall(uint64(v), 3) }

// Read4Bits reads a nibble.
func (c *Chain) Read4Bits() (uint8, error) {
	v, err := c.readBits(4)
	return uint8(v), err
}

// Write4Bits writes a nibble.
func (c *Chain) Write4Bits(v uint8) error { return c.writeSmall(uint64(v), 4) }

// ReadBits reads n bits, 0 <= n <= 64, most significant first.
func (c *Chain) ReadBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: bit count %d", ErrOutOfRange, n)
	}
	return c.readBits(n)
}

// WriteBits writes the low n bits of v, 0 <= n <= 64.
func (c *Chain) WriteBits(v uint64, n int) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("%w: bit count %d", ErrOutOfRange, n)
	}
	return c.writeSmall(v, n)
}

func (c *Chain) writeSmall(v uint64, n int) error {
	if n < 64 && v>>n != 0 {
		return fmt.Errorf("%w: %#x does not fit %d bits", ErrOutOfRange, v, n)
	}
	return c.writeBits(v, n)
}
