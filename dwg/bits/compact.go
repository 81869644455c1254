package bits

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/joshuapare/dwgkit/internal/buf"
)

// Two-bit tags of the compacted integer and double forms.
const (
	tagFull  = 0 // value follows at full width
	tagShort = 1 // BS, BL: one byte follows; BD: 1.0
	tagZero  = 2 // 0 or 0.0, nothing follows
	tagOther = 3 // BS: 256; reserved for BL and BD
)

// ReadBS reads a compacted 16-bit integer.
func (c *Chain) ReadBS() (v uint16, err error) {
	defer c.undo(c.pos, &err)
	tag, err := c.ReadBB()
	if err != nil {
		return 0, err
	}
	switch tag {
	case tagFull:
		return c.ReadRS()
	case tagShort:
		b, err := c.ReadRC()
		return uint16(b), err
	case tagZero:
		return 0, nil
	default:
		return 256, nil
	}
}

// WriteBS writes a compacted 16-bit integer.
func (c *Chain) WriteBS(v uint16) (err error) {
	defer c.undo(c.pos, &err)
	switch {
	case v == 0:
		return c.WriteBB(tagZero)
	case v == 256:
		return c.WriteBB(tagOther)
	case v < 256:
		if err := c.WriteBB(tagShort); err != nil {
			return err
		}
		return c.WriteRC(byte(v))
	default:
		if err := c.WriteBB(tagFull); err != nil {
			return err
		}
		return c.WriteRS(v)
	}
}

// ReadBSd reads a compacted signed 16-bit integer.
func (c *Chain) ReadBSd() (int16, error) {
	v, err := c.ReadBS()
	return int16(v), err
}

// WriteBSd writes a compacted signed 16-bit integer.
func (c *Chain) WriteBSd(v int16) error { return c.WriteBS(uint16(v)) }

// ReadBL reads a compacted 32-bit integer. Tag 3 is reserved.
func (c *Chain) ReadBL() (v uint32, err error) {
	defer c.undo(c.pos, &err)
	tag, err := c.ReadBB()
	if err != nil {
		return 0, err
	}
	switch tag {
	case tagFull:
		return c.ReadRL()
	case tagShort:
		b, err := c.ReadRC()
		return uint32(b), err
	case tagZero:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: BL tag 3 at bit %d", ErrOutOfRange, c.pos-2)
	}
}

// WriteBL writes a compacted 32-bit integer.
func (c *Chain) WriteBL(v uint32) (err error) {
	defer c.undo(c.pos, &err)
	switch {
	case v == 0:
		return c.WriteBB(tagZero)
	case v < 256:
		if err := c.WriteBB(tagShort); err != nil {
			return err
		}
		return c.WriteRC(byte(v))
	default:
		if err := c.WriteBB(tagFull); err != nil {
			return err
		}
		return c.WriteRL(v)
	}
}

// ReadBLd reads a compacted signed 32-bit integer.
func (c *Chain) ReadBLd() (int32, error) {
	v, err := c.ReadBL()
	return int32(v), err
}

// WriteBLd writes a compacted signed 32-bit integer.
func (c *Chain) WriteBLd(v int32) error { return c.WriteBL(uint32(v)) }

// ReadBLL reads a 3-bit byte count followed by that many little-endian
// bytes. Counts above 7 cannot occur, so values need at most 7 bytes.
func (c *Chain) ReadBLL() (v uint64, err error) {
	defer c.undo(c.pos, &err)
	n, err := c.Read3B()
	if err != nil {
		return 0, err
	}
	var b [8]byte
	if err := c.readInto(b[:n]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// WriteBLL writes a 3-bit byte count and the significant bytes of v.
// Values needing all 8 bytes fail with ErrOutOfRange.
func (c *Chain) WriteBLL(v uint64) (err error) {
	n := buf.SignificantBytes(v)
	if n > 7 {
		return fmt.Errorf("%w: BLL %#x needs 8 bytes", ErrOutOfRange, v)
	}
	defer c.undo(c.pos, &err)
	if err := c.Write3B(uint8(n)); err != nil {
		return err
	}
	b := binary.LittleEndian.AppendUint64(nil, v)
	return c.writeFrom(b[:n])
}

// ReadBD reads a compacted double. Tag 3 is reserved.
func (c *Chain) ReadBD() (v float64, err error) {
	defer c.undo(c.pos, &err)
	tag, err := c.ReadBB()
	if err != nil {
		return 0, err
	}
	switch tag {
	case tagFull:
		return c.ReadRD()
	case tagShort:
		return 1.0, nil
	case tagZero:
		return 0.0, nil
	default:
		return 0, fmt.Errorf("%w: BD tag 3 at bit %d", ErrOutOfRange, c.pos-2)
	}
}

// WriteBD writes a compacted double. Negative zero is written in full.
func (c *Chain) WriteBD(v float64) (err error) {
	switch math.Float64bits(v) {
	case 0:
		return c.WriteBB(tagZero)
	case math.Float64bits(1.0):
		return c.WriteBB(tagShort)
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteBB(tagFull); err != nil {
		return err
	}
	return c.WriteRD(v)
}

const botOffset = 0x1F0

// ReadBOT reads an R2010+ object type: tag 0 one byte, tag 1 one byte
// plus 0x1F0, tags 2 and 3 a raw short.
func (c *Chain) ReadBOT() (v uint16, err error) {
	defer c.undo(c.pos, &err)
	tag, err := c.ReadBB()
	if err != nil {
		return 0, err
	}
	switch tag {
	case 0:
		b, err := c.ReadRC()
		return uint16(b), err
	case 1:
		b, err := c.ReadRC()
		return uint16(b) + botOffset, err
	default:
		return c.ReadRS()
	}
}

// WriteBOT writes an R2010+ object type.
func (c *Chain) WriteBOT(v uint16) (err error) {
	defer c.undo(c.pos, &err)
	switch {
	case v < 256:
		if err := c.WriteBB(0); err != nil {
			return err
		}
		return c.WriteRC(byte(v))
	case v >= botOffset && v-botOffset < 256:
		if err := c.WriteBB(1); err != nil {
			return err
		}
		return c.WriteRC(byte(v - botOffset))
	default:
		if err := c.WriteBB(2); err != nil {
			return err
		}
		return c.WriteRS(v)
	}
}

// ReadObjectType reads a BOT from R2010 on and a BS before.
func (c *Chain) ReadObjectType() (uint16, error) {
	if c.from.PackedObjectType() {
		return c.ReadBOT()
	}
	return c.ReadBS()
}

// WriteObjectType writes a BOT from R2010 on and a BS before.
func (c *Chain) WriteObjectType(v uint16) error {
	if c.version.PackedObjectType() {
		return c.WriteBOT(v)
	}
	return c.WriteBS(v)
}

// ReadBT reads a thickness. From R2000 a set leading bit means 0.0.
func (c *Chain) ReadBT() (v float64, err error) {
	if !c.from.DefaultedVectors() {
		return c.ReadBD()
	}
	defer c.undo(c.pos, &err)
	zero, err := c.ReadB()
	if err != nil || zero {
		return 0, err
	}
	return c.ReadBD()
}

// WriteBT writes a thickness.
func (c *Chain) WriteBT(v float64) (err error) {
	if !c.version.DefaultedVectors() {
		return c.WriteBD(v)
	}
	if math.Float64bits(v) == 0 {
		return c.WriteB(true)
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteB(false); err != nil {
		return err
	}
	return c.WriteBD(v)
}

// DefaultExtrusion is the extrusion elided by BE.
var DefaultExtrusion = Point3{0, 0, 1}

// ReadBE reads an extrusion. From R2000 a set leading bit means (0,0,1).
func (c *Chain) ReadBE() (v Point3, err error) {
	if !c.from.DefaultedVectors() {
		return c.Read3BD()
	}
	defer c.undo(c.pos, &err)
	def, err := c.ReadB()
	if err != nil {
		return Point3{}, err
	}
	if def {
		return DefaultExtrusion, nil
	}
	return c.Read3BD()
}

// WriteBE writes an extrusion.
func (c *Chain) WriteBE(v Point3) (err error) {
	if !c.version.DefaultedVectors() {
		return c.Write3BD(v)
	}
	if v == DefaultExtrusion {
		return c.WriteB(true)
	}
	defer c.undo(c.pos, &err)
	if err := c.WriteB(false); err != nil {
		return err
	}
	return c.Write3BD(v)
}

// ReadDD reads a double stored relative to def. Code 0 is def itself, code 1
// patches the four low bytes of def, code 2 patches bytes 4 and 5 and then the
// four low bytes, code 3 is a full RD.
func (c *Chain) ReadDD(def float64) (v float64, err error) {
	defer c.undo(c.pos, &err)
	code, err := c.ReadBB()
	if err != nil {
		return 0, err
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(def))
	switch code {
	case 0:
		return def, nil
	case 1:
		if err := c.readInto(b[0:4]); err != nil {
			return 0, err
		}
	case 2:
		if err := c.readInto(b[4:6]); err != nil {
			return 0, err
		}
		if err := c.readInto(b[0:4]); err != nil {
			return 0, err
		}
	default:
		return c.ReadRD()
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}

// WriteDD writes v relative to def using the shortest code.
func (c *Chain) WriteDD(v, def float64) (err error) {
	vb, db := math.Float64bits(v), math.Float64bits(def)
	if vb == db {
		return c.WriteBB(0)
	}
	defer c.undo(c.pos, &err)
	b := binary.LittleEndian.AppendUint64(nil, vb)
	switch {
	case vb>>32 == db>>32:
		if err := c.WriteBB(1); err != nil {
			return err
		}
		return c.writeFrom(b[0:4])
	case vb>>48 == db>>48:
		if err := c.WriteBB(2); err != nil {
			return err
		}
		if err := c.writeFrom(b[4:6]); err != nil {
			return err
		}
		return c.writeFrom(b[0:4])
	default:
		if err := c.WriteBB(3); err != nil {
			return err
		}
		return c.WriteRD(v)
	}
}
