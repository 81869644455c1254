package objmap

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/crc"
)

func encode(t *testing.T, entries []Entry) []byte {
	t.Helper()
	c := bits.New(bits.Options{})
	require.NoError(t, Encode(c, entries))
	return c.Bytes()
}

func TestRoundTripSmall(t *testing.T) {
	entries := []Entry{{1, 100}, {2, 150}, {5, 90}, {0x1F0, 0x10000}}
	data := encode(t, []Entry{entries[2], entries[0], entries[3], entries[1]})

	c := bits.FromBytes(data, bits.Options{})
	got, err := Decode(c)
	require.NoError(t, err)
	assert.Equal(t, entries, got, "entries come back in handle order")
	assert.Equal(t, int64(len(data))*8, c.Position())
}

func TestEmptyTable(t *testing.T) {
	data := encode(t, nil)
	sum := crc.Checksum16(crc.SeedObject, []byte{0x00, 0x02})
	assert.Equal(t, []byte{0x00, 0x02, byte(sum >> 8), byte(sum)}, data)

	got, err := Decode(bits.FromBytes(data, bits.Options{}))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestManySections(t *testing.T) {
	var entries []Entry
	for i := range uint64(3000) {
		entries = append(entries, Entry{Handle: i + 1, Address: 0x100 + i*0x40})
	}
	data := encode(t, entries)
	require.Greater(t, len(data), 2*MaxSection)

	sections := 0
	for off := 0; ; {
		require.LessOrEqual(t, off+2, len(data))
		size := int(binary.BigEndian.Uint16(data[off:]))
		require.LessOrEqual(t, size, MaxSection)
		off += size + 2
		if size == 2 {
			assert.Equal(t, len(data), off, "terminator is the last section")
			break
		}
		sections++
	}
	assert.Greater(t, sections, 2)

	got, err := Decode(bits.FromBytes(data, bits.Options{}))
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestUnalignedStart(t *testing.T) {
	c := bits.New(bits.Options{})
	require.NoError(t, c.WriteBits(0b101, 3))
	require.NoError(t, Encode(c, []Entry{{7, 70}}))

	r := bits.FromBytes(c.Bytes(), bits.Options{})
	require.NoError(t, r.Advance(3))
	got, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{7, 70}}, got)
}

func TestCorruptSections(t *testing.T) {
	good := encode(t, []Entry{{1, 10}, {2, 20}})

	flipped := append([]byte(nil), good...)
	flipped[3] ^= 0x01
	_, err := Decode(bits.FromBytes(flipped, bits.Options{}))
	require.ErrorIs(t, err, ErrCorrupt)
	require.ErrorIs(t, err, bits.ErrCRCMismatch)

	tiny := []byte{0x00, 0x01, 0x00, 0x00}
	_, err = Decode(bits.FromBytes(tiny, bits.Options{}))
	require.ErrorIs(t, err, ErrCorrupt)

	huge := []byte{0x7F, 0xFF, 0x01, 0x02}
	_, err = Decode(bits.FromBytes(huge, bits.Options{}))
	require.ErrorIs(t, err, ErrCorrupt)

	// Table cut before its terminator: the first section still decodes.
	cut := good[:len(good)-4]
	got, err := Decode(bits.FromBytes(cut, bits.Options{}))
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, []Entry{{1, 10}, {2, 20}}, got)
}

func TestPairOverrunsSection(t *testing.T) {
	// One section whose only pair has a continued UMC and no end byte.
	body := []byte{0x00, 0x03, 0x81}
	sum := crc.Checksum16(crc.SeedObject, body)
	data := append(body, byte(sum>>8), byte(sum))
	_, err := Decode(bits.FromBytes(data, bits.Options{}))
	require.ErrorIs(t, err, ErrCorrupt)
	require.ErrorIs(t, err, bits.ErrTruncated)
}

func TestInvalidEntries(t *testing.T) {
	c := bits.New(bits.Options{})
	require.ErrorIs(t, Encode(c, []Entry{{0, 1}}), ErrInvalidEntry)
	require.ErrorIs(t, Encode(c, []Entry{{3, 1}, {3, 2}}), ErrInvalidEntry)
	assert.Equal(t, 0, c.Len())
}
