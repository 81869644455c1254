package bits

import (
	"fmt"

	"github.com/joshuapare/dwgkit/dwg/handle"
)

// ReadH reads a handle reference: one byte code<<4|size, then size value
// bytes most significant first. The returned Size is the on-disk width.
// Undefined codes are logged, or rejected in strict mode.
func (c *Chain) ReadH() (h handle.Handle, err error) {
	defer c.undo(c.pos, &err)
	start := c.pos
	b, err := c.ReadRC()
	if err != nil {
		return handle.Handle{}, err
	}
	h.Code, h.Size = handle.Code(b>>4), b&0x0F
	if h.Size > handle.MaxSize {
		return handle.Handle{}, fmt.Errorf("%w: handle size %d at bit %d", ErrOutOfRange, h.Size, start)
	}
	if !h.Code.Valid() {
		if c.strict() {
			return handle.Handle{}, fmt.Errorf("%w: handle code %d at bit %d", ErrOutOfRange, h.Code, start)
		}
		c.log.Err("bits: undefined handle code", "code", uint8(h.Code), "pos", start)
	}
	v, err := c.readBits(8 * int(h.Size))
	if err != nil {
		return handle.Handle{}, err
	}
	h.Value = v
	c.log.Handle("bits: H", "handle", h.String(), "pos", start)
	return h, nil
}

// WriteH writes h with the minimal size for its value.
func (c *Chain) WriteH(h handle.Handle) error {
	if h.Code > 0x0F {
		return fmt.Errorf("%w: handle code %d", ErrOutOfRange, h.Code)
	}
	return c.writeFrom(handle.Encode(h))
}
