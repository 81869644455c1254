package bits

import (
	"encoding/binary"
	"math"
)

// ReadRC reads a raw byte.
func (c *Chain) ReadRC() (byte, error) {
	v, err := c.readBits(8)
	return byte(v), err
}

// WriteRC writes a raw byte.
func (c *Chain) WriteRC(v byte) error { return c.writeBits(uint64(v), 8) }

// ReadRCd reads a raw signed byte.
func (c *Chain) ReadRCd() (int8, error) {
	v, err := c.ReadRC()
	return int8(v), err
}

// WriteRCd writes a raw signed byte.
func (c *Chain) WriteRCd(v int8) error { return c.WriteRC(byte(v)) }

// ReadRS reads a raw little-endian 16-bit integer.
func (c *Chain) ReadRS() (uint16, error) {
	var b [2]byte
	if err := c.readInto(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// WriteRS writes a raw little-endian 16-bit integer.
func (c *Chain) WriteRS(v uint16) error {
	return c.writeFrom(binary.LittleEndian.AppendUint16(nil, v))
}

// ReadRSd reads a raw little-endian signed 16-bit integer.
func (c *Chain) ReadRSd() (int16, error) {
	v, err := c.ReadRS()
	return int16(v), err
}

// WriteRSd writes a raw little-endian signed 16-bit integer.
func (c *Chain) WriteRSd(v int16) error { return c.WriteRS(uint16(v)) }

// ReadRSBE reads a raw big-endian 16-bit integer, as used by the object map.
func (c *Chain) ReadRSBE() (uint16, error) {
	var b [2]byte
	if err := c.readInto(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// WriteRSBE writes a raw big-endian 16-bit integer.
func (c *Chain) WriteRSBE(v uint16) error {
	return c.writeFrom(binary.BigEndian.AppendUint16(nil, v))
}

// ReadRL reads a raw little-endian 32-bit integer.
func (c *Chain) ReadRL() (uint32, error) {
	var b [4]byte
	if err := c.readInto(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// WriteRL writes a raw little-endian 32-bit integer.
func (c *Chain) WriteRL(v uint32) error {
	return c.writeFrom(binary.LittleEndian.AppendUint32(nil, v))
}

// ReadRLd reads a raw little-endian signed 32-bit integer.
func (c *Chain) ReadRLd() (int32, error) {
	v, err := c.ReadRL()
	return int32(v), err
}

// WriteRLd writes a raw little-endian signed 32-bit integer.
func (c *Chain) WriteRLd(v int32) error { return c.WriteRL(uint32(v)) }

// ReadRLL reads a raw little-endian 64-bit integer.
func (c *Chain) ReadRLL() (uint64, error) {
	var b [8]byte
	if err := c.readInto(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// WriteRLL writes a raw little-endian 64-bit integer.
func (c *Chain) WriteRLL(v uint64) error {
	return c.writeFrom(binary.LittleEndian.AppendUint64(nil, v))
}

// ReadRLLd reads a raw little-endian signed 64-bit integer.
func (c *Chain) ReadRLLd() (int64, error) {
	v, err := c.ReadRLL()
	return int64(v), err
}

// WriteRLLd writes a raw little-endian signed 64-bit integer.
func (c *Chain) WriteRLLd(v int64) error { return c.WriteRLL(uint64(v)) }

// ReadRD reads a raw little-endian IEEE double.
func (c *Chain) ReadRD() (float64, error) {
	v, err := c.ReadRLL()
	return math.Float64frombits(v), err
}

// WriteRD writes a raw little-endian IEEE double.
func (c *Chain) WriteRD(v float64) error { return c.WriteRLL(math.Float64bits(v)) }

// ReadBytes reads n raw bytes into a new slice.
func (c *Chain) ReadBytes(n int) ([]byte, error) {
	nbits, err := byteBits(n)
	if err != nil {
		return nil, err
	}
	if err := c.need(nbits); err != nil {
		return nil, err
	}
	p := make([]byte, n)
	err = c.readInto(p)
	return p, err
}

// WriteBytes writes p verbatim.
func (c *Chain) WriteBytes(p []byte) error { return c.writeFrom(p) }
