package bits

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/dwgkit/dwg/codepage"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ReadTF reads n bytes of fixed-length text verbatim, slack after the
// terminator included.
func (c *Chain) ReadTF(n int) ([]byte, error) { return c.ReadBytes(n) }

// WriteTF writes p into a field of n bytes, zero padded. Text longer than the
// field fails with ErrOutOfRange.
func (c *Chain) WriteTF(p []byte, n int) (err error) {
	if len(p) > n {
		return fmt.Errorf("%w: %d bytes into TF(%d)", ErrOutOfRange, len(p), n)
	}
	defer c.undo(c.pos, &err)
	if err := c.writeFrom(p); err != nil {
		return err
	}
	return c.writeFrom(make([]byte, n-len(p)))
}

// ReadTFString reads a TF field and returns the text before the first NUL.
func (c *Chain) ReadTFString(n int) (string, error) {
	p, err := c.ReadTF(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	return codepage.Decode(c.codepage, p), nil
}

// WriteTFString writes s into a zero padded field of n bytes.
func (c *Chain) WriteTFString(s string, n int) error {
	return c.WriteTF(codepage.Encode(c.codepage, s), n)
}

// ReadTV reads codepage text: a BS length counting the terminator, then the
// bytes. The text ends at the first NUL.
func (c *Chain) ReadTV() (s string, err error) {
	defer c.undo(c.pos, &err)
	n, err := c.ReadBS()
	if err != nil {
		return "", err
	}
	return c.readNarrow(int(n))
}

// WriteTV writes s in the active codepage with its terminator, a zero
// 16-bit unit under UTF16 and a zero byte otherwise.
func (c *Chain) WriteTV(s string) (err error) {
	if s == "" {
		return c.WriteBS(0)
	}
	p := c.encodeNarrow(s)
	if len(p) > math.MaxUint16 {
		return fmt.Errorf("%w: TV of %d bytes", ErrOutOfRange, len(p))
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteBS(uint16(len(p))); err != nil {
		return err
	}
	return c.writeFrom(p)
}

// ReadTU reads UCS-2 text: a BS length in 16-bit units counting the
// terminator, then little-endian units.
func (c *Chain) ReadTU() (s string, err error) {
	defer c.undo(c.pos, &err)
	n, err := c.ReadBS()
	if err != nil {
		return "", err
	}
	return c.readWide(int(n) * 2)
}

// WriteTU writes s as UCS-2 with its terminator.
func (c *Chain) WriteTU(s string) (err error) {
	if s == "" {
		return c.WriteBS(0)
	}
	p, err := encodeWide(s)
	if err != nil {
		return err
	}
	units := len(p) / 2
	if units > math.MaxUint16 {
		return fmt.Errorf("%w: TU of %d units", ErrOutOfRange, units)
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteBS(uint16(units)); err != nil {
		return err
	}
	return c.writeFrom(p)
}

// ReadT reads TU from R2007 on and TV before.
func (c *Chain) ReadT() (string, error) {
	if c.from.WideStrings() {
		return c.ReadTU()
	}
	return c.ReadTV()
}

// WriteT writes TU from R2007 on and TV before.
func (c *Chain) WriteT(s string) error {
	if c.version.WideStrings() {
		return c.WriteTU(s)
	}
	return c.WriteTV(s)
}

// ReadT32 reads codepage text with an RL byte count, the form used by text
// import paths.
func (c *Chain) ReadT32() (s string, err error) {
	defer c.undo(c.pos, &err)
	n, err := c.ReadRL()
	if err != nil {
		return "", err
	}
	if int64(n)*8 > c.Remaining() {
		return "", fmt.Errorf("%w: T32 of %d bytes", ErrTruncated, n)
	}
	return c.readNarrow(int(n))
}

// WriteT32 writes s with an RL byte count including the terminator.
func (c *Chain) WriteT32(s string) (err error) {
	if s == "" {
		return c.WriteRL(0)
	}
	p := c.encodeNarrow(s)
	if uint64(len(p)) > math.MaxUint32 {
		return fmt.Errorf("%w: T32 of %d bytes", ErrOutOfRange, len(p))
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteRL(uint32(len(p))); err != nil {
		return err
	}
	return c.writeFrom(p)
}

// ReadTU32 reads UTF-16 text with an RL byte count.
func (c *Chain) ReadTU32() (s string, err error) {
	defer c.undo(c.pos, &err)
	n, err := c.ReadRL()
	if err != nil {
		return "", err
	}
	if n%2 != 0 {
		return "", fmt.Errorf("%w: TU32 odd byte count %d", ErrOutOfRange, n)
	}
	if int64(n)*8 > c.Remaining() {
		return "", fmt.Errorf("%w: TU32 of %d bytes", ErrTruncated, n)
	}
	return c.readWide(int(n))
}

// WriteTU32 writes s as UTF-16 with an RL byte count including the
// terminator.
func (c *Chain) WriteTU32(s string) (err error) {
	if s == "" {
		return c.WriteRL(0)
	}
	p, err := encodeWide(s)
	if err != nil {
		return err
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteRL(uint32(len(p))); err != nil {
		return err
	}
	return c.writeFrom(p)
}

// encodeNarrow returns s in the active codepage followed by the terminator
// readNarrow looks for.
func (c *Chain) encodeNarrow(s string) []byte {
	p := codepage.Encode(c.codepage, s)
	if c.codepage == codepage.UTF16 {
		return append(p, 0, 0)
	}
	return append(p, 0)
}

func (c *Chain) readNarrow(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	p, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	i := bytes.IndexByte(p, 0)
	if c.codepage == codepage.UTF16 {
		i = wideEnd(p)
	}
	switch {
	case i >= 0:
		p = p[:i]
	case c.strict():
		return "", fmt.Errorf("%w: text of %d bytes without terminator", ErrOutOfRange, n)
	default:
		c.log.Trace("bits: unterminated text", "bytes", n, "pos", c.pos)
	}
	return codepage.Decode(c.codepage, p), nil
}

func (c *Chain) readWide(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	p, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	switch i := wideEnd(p); {
	case i >= 0:
		p = p[:i]
	case c.strict():
		return "", fmt.Errorf("%w: text of %d units without terminator", ErrOutOfRange, n/2)
	default:
		c.log.Trace("bits: unterminated text", "units", n/2, "pos", c.pos)
	}
	out, err := utf16le.NewDecoder().Bytes(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return string(out), nil
}

// wideEnd returns the byte offset of the first zero 16-bit unit, or -1.
func wideEnd(p []byte) int {
	for i := 0; i+1 < len(p); i += 2 {
		if binary.LittleEndian.Uint16(p[i:]) == 0 {
			return i
		}
	}
	return -1
}

// encodeWide returns s as UTF-16LE followed by a zero unit.
func encodeWide(s string) ([]byte, error) {
	p, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return append(p, 0, 0), nil
}
