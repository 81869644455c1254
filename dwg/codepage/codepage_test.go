package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	for c := UTF8; c < Unknown; c++ {
		got, err := Parse(c.String())
		require.NoError(t, err, "codepage %d", int(c))
		assert.Equal(t, c, got)
	}
	got, err := Parse("ansi_1252")
	require.NoError(t, err)
	assert.Equal(t, ANSI1252, got)

	_, err = Parse("EBCDIC")
	require.Error(t, err)
	assert.Equal(t, "codepage(99)", Codepage(99).String())
}

func TestSupport(t *testing.T) {
	assert.True(t, UTF8.Supported())
	assert.True(t, ANSI1252.Supported())
	assert.False(t, CP857.Supported())
	assert.True(t, CP932.MultiByte())
	assert.False(t, ANSI1252.MultiByte())
	assert.Nil(t, UTF8.Encoding())
	assert.NotNil(t, CP864.Encoding(), "unsupported codepages fall back to a byte-preserving table")
}

func TestEncodeDecodeRepresentable(t *testing.T) {
	tests := []struct {
		name string
		cp   Codepage
		text string
		raw  []byte
	}{
		{"ascii", ANSI1252, "LAYER_0", []byte("LAYER_0")},
		{"latin1", ANSI1252, "Größe", []byte{'G', 'r', 0xF6, 0xDF, 'e'}},
		{"euro", ANSI1252, "€", []byte{0x80}},
		{"cyrillic", ANSI1251, "Слой", []byte{0xD1, 0xEB, 0xEE, 0xE9}},
		{"dos", CP437, "é", []byte{0x82}},
		{"shiftjis", CP932, "あ", []byte{0x82, 0xA0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := Encode(tc.cp, tc.text)
			assert.Equal(t, tc.raw, raw)
			assert.Equal(t, tc.text, Decode(tc.cp, raw))
		})
	}
}

func TestEncodeEscapesUnrepresentable(t *testing.T) {
	raw := Encode(ANSI1252, "a€Ω")
	assert.Equal(t, []byte("a\x80\\U+03A9"), raw)
	assert.Equal(t, "a€Ω", Decode(ANSI1252, raw))

	raw = Encode(USASCII, "é")
	assert.Equal(t, `\U+00E9`, string(raw))
	assert.Equal(t, "é", Decode(USASCII, raw))
}

func TestEncodeSupplementaryPlane(t *testing.T) {
	raw := Encode(ANSI1252, "x😀")
	assert.Equal(t, `x\U+D83D\U+DE00`, string(raw))
	assert.Equal(t, "x😀", Decode(ANSI1252, raw))
}

func TestEscapeIsStable(t *testing.T) {
	once := Encode(CP437, "Ω≠∑")
	twice := Encode(CP437, Decode(CP437, once))
	assert.Equal(t, once, twice)
}

func TestUnescapeMalformed(t *testing.T) {
	assert.Equal(t, `\U+12`, Unescape(`\U+12`))
	assert.Equal(t, `\U+ZZZZ`, Unescape(`\U+ZZZZ`))
	assert.Equal(t, `\U+D83D!`, Unescape(`\U+D83D!`))
	assert.Equal(t, "ab", Unescape(`\U+0061b`))
	assert.Equal(t, "plain", Unescape("plain"))
}

func TestLiteralEscapeDecodesAsCharacter(t *testing.T) {
	for _, c := range []Codepage{ANSI1252, UTF8, UTF16} {
		raw := Encode(c, `a\U+0041b`)
		assert.Equal(t, "aAb", Decode(c, raw), c.String())
	}
	assert.Equal(t, []byte(`\U+0041`), Encode(ANSI1252, `\U+0041`))
	assert.Equal(t, `\U+004`, Decode(ANSI1252, Encode(ANSI1252, `\U+004`)))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `A\U+00C4`, Escape("AÄ"))
}

func TestUTF16Codepage(t *testing.T) {
	raw := Encode(UTF16, "Ab")
	assert.Equal(t, []byte{'A', 0, 'b', 0}, raw)
	assert.Equal(t, "Ab", Decode(UTF16, raw))
}

func TestUTF8Passthrough(t *testing.T) {
	assert.Equal(t, []byte("Grüße"), Encode(UTF8, "Grüße"))
	assert.Equal(t, "Grüße", Decode(UTF8, []byte("Grüße")))
	assert.Equal(t, "a�", Decode(UTF8, []byte{'a', 0xFF}))
}

func TestTextMarshaling(t *testing.T) {
	b, err := ANSI1252.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ANSI_1252", string(b))

	var c Codepage
	require.NoError(t, c.UnmarshalText([]byte("big5")))
	assert.Equal(t, Big5, c)
	assert.Error(t, c.UnmarshalText([]byte("EBCDIC")))
}
