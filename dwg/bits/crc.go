package bits

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/dwgkit/dwg/crc"
	"github.com/joshuapare/dwgkit/internal/buf"
)

// padByte writes zero bits up to the next byte boundary.
func (c *Chain) padByte() error {
	if pad := (8 - c.pos&7) & 7; pad != 0 {
		return c.writeBits(0, int(pad))
	}
	return nil
}

// checksum returns the CRC-16 of the bytes from start to the position, which
// must be byte aligned.
func (c *Chain) checksum(start int, seed uint16) (uint16, error) {
	end := int(c.pos >> 3)
	p, ok := buf.Slice(c.Bytes(), start, end-start)
	if !ok {
		return 0, fmt.Errorf("%w: crc range %d..%d of %d", ErrOutOfRange, start, end, c.size)
	}
	h := crc.New16(seed)
	_, _ = h.Write(p)
	return h.Sum16(), nil
}

func (c *Chain) writeCRC(start int, seed uint16, order binary.ByteOrder) (sum uint16, err error) {
	defer c.undo(c.pos, &err)
	if err := c.padByte(); err != nil {
		return 0, err
	}
	if sum, err = c.checksum(start, seed); err != nil {
		return 0, err
	}
	var b [2]byte
	order.PutUint16(b[:], sum)
	return sum, c.writeFrom(b[:])
}

// WriteCRC pads to a byte boundary, then writes the CRC-16 of the bytes from
// start up to that boundary as a little-endian RS. It returns the checksum.
func (c *Chain) WriteCRC(start int, seed uint16) (uint16, error) {
	return c.writeCRC(start, seed, binary.LittleEndian)
}

// WriteCRCBE is WriteCRC with a big-endian slot, as in the object map.
func (c *Chain) WriteCRCBE(start int, seed uint16) (uint16, error) {
	return c.writeCRC(start, seed, binary.BigEndian)
}

func (c *Chain) readCRC(order binary.ByteOrder) (v uint16, err error) {
	defer c.undo(c.pos, &err)
	c.AlignByte()
	var b [2]byte
	if err := c.readInto(b[:]); err != nil {
		return 0, err
	}
	return order.Uint16(b[:]), nil
}

// ReadCRC skips to the next byte boundary and consumes a little-endian CRC
// slot without checking it.
func (c *Chain) ReadCRC() (uint16, error) { return c.readCRC(binary.LittleEndian) }

// ReadCRCBE consumes a big-endian CRC slot.
func (c *Chain) ReadCRCBE() (uint16, error) { return c.readCRC(binary.BigEndian) }

func (c *Chain) checkCRC(start int, seed uint16, order binary.ByteOrder) error {
	pos := c.pos
	c.AlignByte()
	want, err := c.checksum(start, seed)
	if err != nil {
		c.pos = pos
		return err
	}
	got, err := c.readCRC(order)
	if err != nil {
		c.pos = pos
		return err
	}
	if got != want {
		c.log.Err("bits: crc mismatch", "stored", got, "computed", want, "start", start)
		return fmt.Errorf("%w: stored %#04x, computed %#04x", ErrCRCMismatch, got, want)
	}
	return nil
}

// CheckCRC skips to the next byte boundary, computes the CRC-16 of the bytes
// from start to there and compares it with the little-endian slot that
// follows. On ErrCRCMismatch the slot is consumed; on other errors the
// position is unchanged.
func (c *Chain) CheckCRC(start int, seed uint16) error {
	return c.checkCRC(start, seed, binary.LittleEndian)
}

// CheckCRCBE is CheckCRC for a big-endian slot.
func (c *Chain) CheckCRCBE(start int, seed uint16) error {
	return c.checkCRC(start, seed, binary.BigEndian)
}
