// Package crc implements the two checksums used inside DWG files: the 16-bit
// CRC guarding object records, section pages and the object map, and the
// 32-bit CRC of R2004+ page headers.
//
// Either computation continues from any previous value by using it as the
// seed. CRC16 wraps the 16-bit form as an io.Writer.
package crc

import (
	"hash/crc32"
)

const (
	// SeedObject seeds the checksum of object records, the header and
	// classes sections and every object map section.
	SeedObject uint16 = 0xC0C1

	polynomial16 uint16 = 0xA001 // reflected 0x8005
)

var table16 = makeTable16(polynomial16)

func makeTable16(poly uint16) *[256]uint16 {
	var t [256]uint16
	for i := range t {
		v := uint16(i)
		for range 8 {
			if v&1 != 0 {
				v = v>>1 ^ poly
			} else {
				v >>= 1
			}
		}
		t[i] = v
	}
	return &t
}

// Update16 returns the 16-bit checksum of p continued from seed.
func Update16(seed uint16, p []byte) uint16 {
	crc := seed
	for _, b := range p {
		crc = crc>>8 ^ table16[byte(crc)^b]
	}
	return crc
}

// Checksum16 returns the 16-bit checksum of p with the given seed.
func Checksum16(seed uint16, p []byte) uint16 {
	return Update16(seed, p)
}

// Update32 returns the 32-bit checksum of p continued from seed.
func Update32(seed uint32, p []byte) uint32 {
	return crc32.Update(seed, crc32.IEEETable, p)
}

// Checksum32 returns the 32-bit checksum of p with the given seed.
func Checksum32(seed uint32, p []byte) uint32 {
	return Update32(seed, p)
}

// CRC16 is a streaming 16-bit checksum. The zero value uses seed 0.
type CRC16 struct {
	crc uint16
}

// New16 returns a CRC16 starting from seed.
func New16(seed uint16) *CRC16 {
	return &CRC16{crc: seed}
}

// Write adds p to the running checksum. It never fails.
func (c *CRC16) Write(p []byte) (int, error) {
	c.crc = Update16(c.crc, p)
	return len(p), nil
}

// Sum16 returns the checksum of everything written so far.
func (c *CRC16) Sum16() uint16 { return c.crc }
