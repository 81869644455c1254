package bits

import (
	"bytes"
	"fmt"
)

// Sentinel is a 16-byte marker framing a file section.
type Sentinel [16]byte

// Section sentinels. Each end marker is the bitwise complement of its begin
// marker.
var (
	SentinelHeaderEnd = Sentinel{0x95, 0xA0, 0x4E, 0x28, 0x99, 0x82, 0x1A, 0xE5,
		0x5E, 0x41, 0xE0, 0x5F, 0x9D, 0x3A, 0x4D, 0x00}
	SentinelPictureBegin = Sentinel{0x1F, 0x25, 0x6D, 0x07, 0xD4, 0x36, 0x28, 0x28,
		0x9D, 0x57, 0xCA, 0x3F, 0x9D, 0x44, 0x10, 0x2B}
	SentinelPictureEnd     = SentinelPictureBegin.Complement()
	SentinelVariablesBegin = Sentinel{0xCF, 0x7B, 0x1F, 0x23, 0xFD, 0xDE, 0x38, 0xA9,
		0x5F, 0x7C, 0x68, 0xB8, 0x4E, 0x6D, 0x33, 0x5F}
	SentinelVariablesEnd = SentinelVariablesBegin.Complement()
	SentinelClassesBegin = Sentinel{0x8D, 0xA1, 0xC4, 0xB8, 0xC4, 0xA9, 0xF8, 0xC5,
		0xC0, 0xDC, 0xF4, 0x5F, 0xE7, 0xCF, 0xB6, 0x8A}
	SentinelClassesEnd        = SentinelClassesBegin.Complement()
	SentinelSecondHeaderBegin = Sentinel{0xD4, 0x7B, 0x21, 0xCE, 0x28, 0x93, 0x9F, 0xBF,
		0x53, 0x24, 0x40, 0x09, 0x12, 0x3C, 0xAA, 0x01}
	SentinelSecondHeaderEnd = SentinelSecondHeaderBegin.Complement()
)

// Complement returns s with every bit inverted.
func (s Sentinel) Complement() Sentinel {
	for i := range s {
		s[i] = ^s[i]
	}
	return s
}

// WriteSentinel writes s at the position.
func (c *Chain) WriteSentinel(s Sentinel) error { return c.writeFrom(s[:]) }

// ExpectSentinel consumes 16 bytes and fails with ErrOutOfRange unless they
// equal s.
func (c *Chain) ExpectSentinel(s Sentinel) (err error) {
	defer c.undo(c.pos, &err)
	var got Sentinel
	if err := c.readInto(got[:]); err != nil {
		return err
	}
	if got != s {
		return fmt.Errorf("%w: sentinel mismatch at byte %d", ErrOutOfRange, c.Byte()-16)
	}
	return nil
}

// SearchSentinel scans the buffer from its first byte for s. When found the
// position moves to the byte after it.
func (c *Chain) SearchSentinel(s Sentinel) bool {
	i := bytes.Index(c.data[:c.size], s[:])
	if i < 0 {
		return false
	}
	c.pos = int64(i+len(s)) * 8
	return true
}
