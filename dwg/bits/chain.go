package bits

import (
	"fmt"

	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/diag"
	"github.com/joshuapare/dwgkit/dwg/version"
	"github.com/joshuapare/dwgkit/internal/buf"
)

const (
	// DefaultMaxSize bounds the buffer of a Chain built with a zero MaxSize.
	DefaultMaxSize = 1 << 30

	growChunk = 40960
)

// Flags alter how a Chain treats unusual input.
type Flags uint8

const (
	// Strict turns recoverable oddities into errors: handle references with
	// undefined codes and text without a terminator.
	Strict Flags = 1 << iota
	// Import selects the RL-length text forms (T32, TU32) when fields are
	// driven through ReadKind and WriteKind.
	Import
)

// Options configures a Chain.
type Options struct {
	// Version is the format written by Write* methods.
	Version version.Version
	// FromVersion is the format read by Read* methods. Zero means Version.
	FromVersion version.Version
	// Codepage converts TV text. Zero is UTF-8 passthrough.
	Codepage codepage.Codepage
	Flags    Flags
	// Log receives diagnostics. Nil is silent.
	Log *diag.Logger
	// MaxSize caps the buffer in bytes. Zero means DefaultMaxSize.
	MaxSize int
}

// Chain is a bit cursor over a byte buffer. Not safe for concurrent use.
type Chain struct {
	data []byte // allocated storage, len(data) >= size
	size int    // logical length in bytes
	pos  int64  // bit position

	version  version.Version
	from     version.Version
	codepage codepage.Codepage
	flags    Flags
	log      *diag.Logger
	max      int
}

// New returns an empty chain for writing.
func New(opts Options) *Chain {
	c := &Chain{}
	c.configure(opts)
	return c
}

// FromBytes returns a chain reading b. Writes modify b in place until they
// need to grow past len(b).
func FromBytes(b []byte, opts Options) *Chain {
	c := &Chain{data: b, size: len(b)}
	c.configure(opts)
	if c.max < len(b) {
		c.max = len(b)
	}
	return c
}

func (c *Chain) configure(opts Options) {
	c.version = opts.Version
	c.from = opts.FromVersion
	if c.from == version.Invalid {
		c.from = opts.Version
	}
	c.codepage = opts.Codepage
	c.flags = opts.Flags
	c.log = opts.Log
	c.max = opts.MaxSize
	if c.max <= 0 {
		c.max = DefaultMaxSize
	}
}

// Version returns the format written by Write* methods.
func (c *Chain) Version() version.Version { return c.version }

// FromVersion returns the format read by Read* methods.
func (c *Chain) FromVersion() version.Version { return c.from }

// Codepage returns the active text codepage.
func (c *Chain) Codepage() codepage.Codepage { return c.codepage }

// SetCodepage switches the text codepage, typically once the header has
// declared it.
func (c *Chain) SetCodepage(cp codepage.Codepage) { c.codepage = cp }

// Flags returns the option flags.
func (c *Chain) Flags() Flags { return c.flags }

// Log returns the diagnostics logger, possibly nil.
func (c *Chain) Log() *diag.Logger { return c.log }

func (c *Chain) strict() bool { return c.flags&Strict != 0 }

// Position returns the bit position.
func (c *Chain) Position() int64 { return c.pos }

// Byte returns the byte offset of the position.
func (c *Chain) Byte() int64 { return c.pos >> 3 }

// Bit returns the bit offset of the position within its byte, 0..7.
func (c *Chain) Bit() uint8 { return uint8(c.pos & 7) }

// Len returns the logical length in bytes.
func (c *Chain) Len() int { return c.size }

// Remaining returns the number of unread bits, 0 past the end.
func (c *Chain) Remaining() int64 { return buf.BitsLeft(c.size, c.pos) }

// Bytes returns the logical contents. The slice aliases the chain.
func (c *Chain) Bytes() []byte { return c.data[:c.size] }

// SetPosition moves to an absolute bit position. Positions past the end are
// allowed; reads there fail with ErrTruncated.
func (c *Chain) SetPosition(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("%w: position %d", ErrOutOfRange, pos)
	}
	c.pos = pos
	return nil
}

// Advance moves the position by n bits. Negative n rewinds.
func (c *Chain) Advance(n int64) error {
	pos, ok := buf.AddOverflowSafe(c.pos, n)
	if !ok || pos < 0 {
		return fmt.Errorf("%w: advance %d from %d", ErrOutOfRange, n, c.pos)
	}
	c.pos = pos
	return nil
}

// Reset rewinds to bit 0 and keeps the contents.
func (c *Chain) Reset() { c.pos = 0 }

// AlignByte moves forward to the next byte boundary.
func (c *Chain) AlignByte() { c.pos = (c.pos + 7) &^ 7 }

// Reserve makes room for n more bytes past the logical end without
// changing the length.
func (c *Chain) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: reserve %d", ErrOutOfRange, n)
	}
	need, ok := buf.AddOverflowSafe(int64(c.size), int64(n))
	if !ok || need > int64(c.max) {
		return fmt.Errorf("%w: reserve %d bytes past %d, limit %d", ErrOutOfMemory, n, c.size, c.max)
	}
	return c.grow(int(need))
}

func (c *Chain) grow(need int) error {
	if need <= len(c.data) {
		return nil
	}
	size, ok := buf.GrowSize(len(c.data), need, growChunk, c.max)
	if !ok {
		return fmt.Errorf("%w: need %d bytes, limit %d", ErrOutOfMemory, need, c.max)
	}
	c.log.Insane("bits: grow", "from", len(c.data), "to", size)
	data := make([]byte, size)
	copy(data, c.data[:c.size])
	c.data = data
	return nil
}

// need checks that n bits can be read at the position.
func (c *Chain) need(n int64) error {
	if err := buf.CheckBits(c.size, c.pos, n); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return nil
}

// byteBits returns n bytes as a bit count.
func byteBits(n int) (int64, error) {
	v, ok := buf.MulOverflowSafe(n, 8)
	if !ok {
		return 0, fmt.Errorf("%w: byte count %d", ErrOutOfRange, n)
	}
	return int64(v), nil
}

// ensure makes n bits writable at the position and extends the length.
func (c *Chain) ensure(n int64) error {
	end, ok := buf.AddOverflowSafe(c.pos, n)
	if !ok || n < 0 {
		return fmt.Errorf("%w: %d bits at %d", ErrOutOfMemory, n, c.pos)
	}
	need := (end + 7) >> 3
	if need > int64(c.max) {
		return fmt.Errorf("%w: need %d bytes, limit %d", ErrOutOfMemory, need, c.max)
	}
	if err := c.grow(int(need)); err != nil {
		return err
	}
	if int(need) > c.size {
		clear(c.data[c.size:need])
		c.size = int(need)
	}
	return nil
}

// undo restores the position saved by the caller when *err is set.
func (c *Chain) undo(pos int64, err *error) {
	if *err != nil {
		c.pos = pos
	}
}

// peek returns the next n <= 64 bits without bounds checks.
func (c *Chain) peek(n int) uint64 {
	var v uint64
	pos := c.pos
	for n > 0 {
		off := int(pos & 7)
		take := min(8-off, n)
		b := uint64(c.data[pos>>3]) >> (8 - off - take)
		v = v<<take | b&(1<<take-1)
		pos += int64(take)
		n -= take
	}
	return v
}

// readBits consumes n <= 64 bits.
func (c *Chain) readBits(n int) (uint64, error) {
	if err := c.need(int64(n)); err != nil {
		return 0, err
	}
	v := c.peek(n)
	c.pos += int64(n)
	return v, nil
}

// put stores the low n <= 64 bits of v without bounds checks.
func (c *Chain) put(v uint64, n int) {
	pos := c.pos
	for n > 0 {
		off := int(pos & 7)
		take := min(8-off, n)
		shift := 8 - off - take
		mask := byte((1<<take - 1) << shift)
		i := pos >> 3
		c.data[i] = c.data[i]&^mask | byte(v>>(n-take))<<shift&mask
		pos += int64(take)
		n -= take
	}
	c.pos = pos
}

// writeBits stores the low n <= 64 bits of v.
func (c *Chain) writeBits(v uint64, n int) error {
	if err := c.ensure(int64(n)); err != nil {
		return err
	}
	c.put(v, n)
	return nil
}

// readInto fills p with the next len(p) bytes.
func (c *Chain) readInto(p []byte) error {
	n, err := byteBits(len(p))
	if err != nil {
		return err
	}
	if err := c.need(n); err != nil {
		return err
	}
	if c.pos&7 == 0 {
		i := c.pos >> 3
		copy(p, c.data[i:])
		c.pos += n
		return nil
	}
	for i := range p {
		p[i] = byte(c.peek(8))
		c.pos += 8
	}
	return nil
}

// writeFrom stores p at the position.
func (c *Chain) writeFrom(p []byte) error {
	n, err := byteBits(len(p))
	if err != nil {
		return err
	}
	if err := c.ensure(n); err != nil {
		return err
	}
	if c.pos&7 == 0 {
		copy(c.data[c.pos>>3:], p)
		c.pos += n
		return nil
	}
	for _, b := range p {
		c.put(uint64(b), 8)
	}
	return nil
}
