package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/version"
)

func TestTVCodepageBytes(t *testing.T) {
	c := New(Options{Codepage: codepage.ANSI1252})
	require.NoError(t, c.WriteTV("Café"))

	c.Reset()
	n, err := c.ReadBS()
	require.NoError(t, err)
	assert.Equal(t, uint16(5), n)
	raw, err := c.ReadBytes(5)
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'a', 'f', 0xE9, 0}, raw)

	c.Reset()
	s, err := c.ReadTV()
	require.NoError(t, err)
	assert.Equal(t, "Café", s)
}

func TestTVUTF16Codepage(t *testing.T) {
	for _, flags := range []Flags{0, Strict} {
		c := New(Options{Codepage: codepage.UTF16, Flags: flags})
		require.NoError(t, c.WriteTV("AB"))
		require.NoError(t, c.WriteTV("Café 😀"))
		require.NoError(t, c.WriteT32("layer"))

		c.Reset()
		n, err := c.ReadBS()
		require.NoError(t, err)
		assert.Equal(t, uint16(6), n)
		raw, err := c.ReadBytes(6)
		require.NoError(t, err)
		assert.Equal(t, []byte{'A', 0, 'B', 0, 0, 0}, raw)

		c.Reset()
		s, err := c.ReadTV()
		require.NoError(t, err)
		assert.Equal(t, "AB", s)
		s, err = c.ReadTV()
		require.NoError(t, err)
		assert.Equal(t, "Café 😀", s)
		s, err = c.ReadT32()
		require.NoError(t, err)
		assert.Equal(t, "layer", s)
		assert.Less(t, c.Remaining(), int64(8))
	}
}

func TestTVEscapesUnrepresentable(t *testing.T) {
	c := New(Options{Codepage: codepage.ANSI1252})
	require.NoError(t, c.WriteTV("日本 😀"))

	c.Reset()
	_, err := c.ReadBS()
	require.NoError(t, err)
	raw, err := c.ReadBytes(c.Len() - int(c.Byte()) - 1)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `\U+65E5\U+672C`)
	assert.Contains(t, string(raw), `\U+D83D\U+DE00`)

	c.Reset()
	s, err := c.ReadTV()
	require.NoError(t, err)
	assert.Equal(t, "日本 😀", s)
}

func TestTVStopsAtNUL(t *testing.T) {
	c := New(Options{})
	require.NoError(t, c.WriteBS(6))
	require.NoError(t, c.WriteBytes([]byte("ab\x00xyz")[:6]))
	c.Reset()
	s, err := c.ReadTV()
	require.NoError(t, err)
	assert.Equal(t, "ab", s)
	assert.Equal(t, int64(10+48), c.Position(), "the full declared length is consumed")
}

func TestUnterminatedText(t *testing.T) {
	build := func(opts Options) *Chain {
		c := New(opts)
		require.NoError(t, c.WriteBS(2))
		require.NoError(t, c.WriteBytes([]byte("ab")))
		c.Reset()
		return c
	}

	s, err := build(Options{}).ReadTV()
	require.NoError(t, err)
	assert.Equal(t, "ab", s)

	strict := build(Options{Flags: Strict})
	_, err = strict.ReadTV()
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, int64(0), strict.Position())
}

func TestTVTruncated(t *testing.T) {
	c := New(Options{})
	require.NoError(t, c.WriteBS(200))
	require.NoError(t, c.WriteBytes([]byte("short")))
	c.Reset()
	_, err := c.ReadTV()
	require.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, int64(0), c.Position())
}

func TestTUUnits(t *testing.T) {
	c := New(Options{})
	require.NoError(t, c.WriteTU("A😀"))

	c.Reset()
	n, err := c.ReadBS()
	require.NoError(t, err)
	assert.Equal(t, uint16(4), n, "one unit, a surrogate pair and the terminator")
	raw, err := c.ReadBytes(8)
	require.NoError(t, err)
	assert.Equal(t, []byte{'A', 0, 0x3D, 0xD8, 0x00, 0xDE, 0, 0}, raw)

	c.Reset()
	s, err := c.ReadTU()
	require.NoError(t, err)
	assert.Equal(t, "A😀", s)
}

func TestTVersionDispatch(t *testing.T) {
	narrow := New(Options{Version: version.R2004})
	require.NoError(t, narrow.WriteT("abc"))
	wide := New(Options{Version: version.R2007})
	require.NoError(t, wide.WriteT("abc"))

	assert.Equal(t, int64(10+4*8), narrow.Position())
	assert.Equal(t, int64(10+4*16), wide.Position())

	// Converting: read an R2004 stream, write R2018.
	conv := FromBytes(narrow.Bytes(), Options{Version: version.R2018, FromVersion: version.R2004})
	s, err := conv.ReadT()
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
}

func TestTFKeepsSlack(t *testing.T) {
	field := []byte{'a', 'b', 0, 'x', 'y', 0}
	c := New(Options{})
	require.NoError(t, c.WriteBits(1, 3))
	require.NoError(t, c.WriteTF(field, 6))
	require.NoError(t, c.WriteTFString("hi", 4))
	require.ErrorIs(t, c.WriteTF(field, 5), ErrOutOfRange)

	require.NoError(t, c.SetPosition(3))
	got, err := c.ReadTF(6)
	require.NoError(t, err)
	assert.Equal(t, field, got)
	s, err := c.ReadTFString(4)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	require.NoError(t, c.SetPosition(3))
	s, err = c.ReadTFString(6)
	require.NoError(t, err)
	assert.Equal(t, "ab", s)
}

func TestImportTextForms(t *testing.T) {
	c := New(Options{Flags: Import, Version: version.R2000})
	require.NoError(t, c.WriteKind(KindT, "layer"))
	assert.Equal(t, int64(32+6*8), c.Position())
	c.Reset()
	n, err := c.ReadRL()
	require.NoError(t, err)
	assert.Equal(t, uint32(6), n)

	w := New(Options{Flags: Import, Version: version.R2013})
	require.NoError(t, w.WriteKind(KindT, "layer"))
	assert.Equal(t, int64(32+12*8), w.Position())
	w.Reset()
	s, err := w.ReadKind(KindT)
	require.NoError(t, err)
	assert.Equal(t, "layer", s)

	bad := New(Options{})
	require.NoError(t, bad.WriteRL(3))
	bad.Reset()
	_, err = bad.ReadTU32()
	require.ErrorIs(t, err, ErrOutOfRange)

	huge := New(Options{})
	require.NoError(t, huge.WriteRL(1<<30))
	huge.Reset()
	_, err = huge.ReadT32()
	require.ErrorIs(t, err, ErrTruncated)
}
