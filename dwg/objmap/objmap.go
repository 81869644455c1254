// Package objmap encodes the object map section of R13+ drawings: the table
// from handle to the file offset of each object.
//
// The table is a run of sections of at most MaxSection bytes. Each section
// starts with its big-endian byte size (the two size bytes included), holds
// (UMC handle delta, MC offset delta) pairs and ends with a big-endian CRC-16
// over the size field and the pairs. Deltas restart from zero in every
// section. A section of size 2 ends the table.
package objmap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/crc"
)

// MaxSection is the largest section, size field included, CRC excluded.
const MaxSection = 2032

const sizeField = 2

// Entry locates one object.
type Entry struct {
	Handle  uint64
	Address uint64
}

// Encode writes the table for entries at the next byte boundary of c. The
// entries are written in handle order.
func Encode(c *bits.Chain, entries []Entry) error {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int { return cmp.Compare(a.Handle, b.Handle) })
	for i, e := range sorted {
		if e.Handle == 0 {
			return fmt.Errorf("%w: handle 0", ErrInvalidEntry)
		}
		if i > 0 && sorted[i-1].Handle == e.Handle {
			return fmt.Errorf("%w: handle %X listed twice", ErrInvalidEntry, e.Handle)
		}
	}

	c.AlignByte()
	var section []byte
	var last Entry
	sections := 0
	flush := func() error {
		if err := writeSection(c, section); err != nil {
			return err
		}
		sections++
		section, last = section[:0], Entry{}
		return nil
	}
	for _, e := range sorted {
		pair := bits.New(bits.Options{})
		if err := pair.WriteUMC(e.Handle - last.Handle); err != nil {
			return err
		}
		if err := pair.WriteMC(int64(e.Address - last.Address)); err != nil {
			return err
		}
		if sizeField+len(section)+pair.Len() > MaxSection {
			if err := flush(); err != nil {
				return err
			}
			// Deltas restart with the new section.
			pair.Reset()
			if err := pair.WriteUMC(e.Handle); err != nil {
				return err
			}
			if err := pair.WriteMC(int64(e.Address)); err != nil {
				return err
			}
		}
		section = append(section, pair.Bytes()...)
		last = e
	}
	if len(section) > 0 {
		if err := flush(); err != nil {
			return err
		}
	}
	if err := writeSection(c, nil); err != nil {
		return err
	}
	c.Log().Trace("objmap: encoded", "entries", len(sorted), "sections", sections)
	return nil
}

func writeSection(c *bits.Chain, pairs []byte) error {
	start := int(c.Byte())
	if err := c.WriteRSBE(uint16(sizeField + len(pairs))); err != nil {
		return err
	}
	if err := c.WriteBytes(pairs); err != nil {
		return err
	}
	_, err := c.WriteCRCBE(start, crc.SeedObject)
	return err
}

// Decode reads a table starting at the next byte boundary of c and leaves c
// after the terminating section. Entries come back in file order.
func Decode(c *bits.Chain) ([]Entry, error) {
	c.AlignByte()
	var out []Entry
	for n := 0; ; n++ {
		start := c.Byte()
		size, err := c.ReadRSBE()
		if err != nil {
			return out, fmt.Errorf("%w: section %d: %w", ErrCorrupt, n, err)
		}
		if size < sizeField || int64(size-sizeField)*8 > c.Remaining() {
			return out, fmt.Errorf("%w: section %d: size %d with %d bytes left", ErrCorrupt, n, size, c.Remaining()/8)
		}
		if size == sizeField {
			if err := c.CheckCRCBE(int(start), crc.SeedObject); err != nil {
				return out, fmt.Errorf("%w: terminator: %w", ErrCorrupt, err)
			}
			c.Log().Trace("objmap: decoded", "entries", len(out), "sections", n)
			return out, nil
		}

		body, err := c.ReadBytes(int(size - sizeField))
		if err != nil {
			return out, fmt.Errorf("%w: section %d: %w", ErrCorrupt, n, err)
		}
		entries, err := decodePairs(body)
		if err != nil {
			return out, fmt.Errorf("%w: section %d: %w", ErrCorrupt, n, err)
		}
		if err := c.CheckCRCBE(int(start), crc.SeedObject); err != nil {
			return out, fmt.Errorf("%w: section %d: %w", ErrCorrupt, n, err)
		}
		c.Log().Insane("objmap: section", "index", n, "size", size, "entries", len(entries))
		out = append(out, entries...)
	}
}

func decodePairs(body []byte) ([]Entry, error) {
	r := bits.FromBytes(body, bits.Options{})
	var out []Entry
	var last Entry
	for r.Remaining() > 0 {
		dh, err := r.ReadUMC()
		if err != nil {
			return nil, err
		}
		da, err := r.ReadMC()
		if err != nil {
			return nil, err
		}
		last = Entry{Handle: last.Handle + dh, Address: last.Address + uint64(da)}
		out = append(out, last)
	}
	return out, nil
}
