package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dwgkit/dwg/crc"
)

var crcPayload = []byte{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
}

func TestCRCSlotDetectsBitFlip(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.WriteBytes(crcPayload))
	sum, err := w.WriteCRC(0, 0x0000)
	require.NoError(t, err)
	assert.Equal(t, crc.Checksum16(0, crcPayload), sum)
	assert.Equal(t, 18, w.Len())

	data := append([]byte(nil), w.Bytes()...)
	r := FromBytes(data, Options{})
	require.NoError(t, r.Advance(128))
	require.NoError(t, r.CheckCRC(0, 0x0000))
	assert.Equal(t, int64(144), r.Position())

	data[5] ^= 0x10
	r = FromBytes(data, Options{})
	require.NoError(t, r.Advance(128))
	err = r.CheckCRC(0, 0x0000)
	require.ErrorIs(t, err, ErrCRCMismatch)
	assert.Equal(t, int64(144), r.Position(), "a mismatched slot is consumed")
}

func TestCRCPadsToByte(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.WriteRC(0xAB))
	require.NoError(t, w.WriteBits(0b101, 3))
	sum, err := w.WriteCRC(0, crc.SeedObject)
	require.NoError(t, err)
	assert.Equal(t, int64(32), w.Position())
	assert.Equal(t, crc.Checksum16(crc.SeedObject, []byte{0xAB, 0xA0}), sum)
	assert.Equal(t, byte(sum), w.Bytes()[2], "slot is little-endian")

	r := FromBytes(w.Bytes(), Options{})
	require.NoError(t, r.Advance(11))
	require.NoError(t, r.CheckCRC(0, crc.SeedObject))

	require.NoError(t, r.Advance(-16))
	got, err := r.ReadCRC()
	require.NoError(t, err)
	assert.Equal(t, sum, got)
}

func TestCRCBigEndianSlot(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.WriteRSBE(4))
	require.NoError(t, w.WriteBytes([]byte{1, 2}))
	sum, err := w.WriteCRCBE(0, crc.SeedObject)
	require.NoError(t, err)
	assert.Equal(t, byte(sum>>8), w.Bytes()[4])

	r := FromBytes(w.Bytes(), Options{})
	require.NoError(t, r.Advance(32))
	require.NoError(t, r.CheckCRCBE(0, crc.SeedObject))
	require.NoError(t, r.Advance(-16))
	got, err := r.ReadCRCBE()
	require.NoError(t, err)
	assert.Equal(t, sum, got)
}

func TestCRCErrors(t *testing.T) {
	r := FromBytes(crcPayload[:4], Options{})
	require.NoError(t, r.Advance(24))
	err := r.CheckCRC(0, 0)
	require.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, int64(24), r.Position())

	require.NoError(t, r.SetPosition(8))
	require.ErrorIs(t, r.CheckCRC(3, 0), ErrOutOfRange)
	assert.Equal(t, int64(8), r.Position())

	w := New(Options{})
	_, err = w.WriteCRC(-1, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}
