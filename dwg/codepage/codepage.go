// Package codepage maps the DWG codepage numbers to text encodings and
// converts pre-R2007 single/double byte text to and from UTF-8.
//
// Characters that the target codepage cannot represent are written as the
// escape \U+XXXX (four upper-case hex digits, surrogate pairs for
// characters outside the BMP). Decoding expands those escapes again, so
// every string survives a round trip even through a narrow codepage.
package codepage

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Codepage is the numeric codepage id stored in the drawing header.
type Codepage int

const (
	UTF8 Codepage = iota
	USASCII
	ISO8859_1
	ISO8859_2
	ISO8859_3
	ISO8859_4
	ISO8859_5
	ISO8859_6
	ISO8859_7
	ISO8859_8
	ISO8859_9
	CP437
	CP850
	CP852
	CP855
	CP857
	CP860
	CP861
	CP863
	CP864
	CP865
	CP869
	CP932
	Macintosh
	Big5
	CP949
	Johab
	CP866
	ANSI1250
	ANSI1251
	ANSI1252
	GB2312
	ANSI1253
	ANSI1254
	ANSI1255
	ANSI1256
	ANSI1257
	ANSI874
	ANSI932
	ANSI936
	ANSI949
	ANSI950
	ANSI1361
	UTF16
	ANSI1258
	Unknown
)

type entry struct {
	name  string
	enc   encoding.Encoding
	multi bool
}

// Codepages without an x/text implementation keep enc == nil and fall back to
// ISO-8859-1, which maps every byte to a code point and back unchanged.
var entries = [...]entry{
	UTF8:      {name: "UTF8"},
	USASCII:   {name: "US_ASCII", enc: charmap.ISO8859_1},
	ISO8859_1: {name: "ISO-8859-1", enc: charmap.ISO8859_1},
	ISO8859_2: {name: "ISO-8859-2", enc: charmap.ISO8859_2},
	ISO8859_3: {name: "ISO-8859-3", enc: charmap.ISO8859_3},
	ISO8859_4: {name: "ISO-8859-4", enc: charmap.ISO8859_4},
	ISO8859_5: {name: "ISO-8859-5", enc: charmap.ISO8859_5},
	ISO8859_6: {name: "ISO-8859-6", enc: charmap.ISO8859_6},
	ISO8859_7: {name: "ISO-8859-7", enc: charmap.ISO8859_7},
	ISO8859_8: {name: "ISO-8859-8", enc: charmap.ISO8859_8},
	ISO8859_9: {name: "ISO-8859-9", enc: charmap.ISO8859_9},
	CP437:     {name: "CP437", enc: charmap.CodePage437},
	CP850:     {name: "CP850", enc: charmap.CodePage850},
	CP852:     {name: "CP852", enc: charmap.CodePage852},
	CP855:     {name: "CP855", enc: charmap.CodePage855},
	CP857:     {name: "CP857"},
	CP860:     {name: "CP860", enc: charmap.CodePage860},
	CP861:     {name: "CP861"},
	CP863:     {name: "CP863", enc: charmap.CodePage863},
	CP864:     {name: "CP864"},
	CP865:     {name: "CP865", enc: charmap.CodePage865},
	CP869:     {name: "CP869"},
	CP932:     {name: "CP932", enc: japanese.ShiftJIS, multi: true},
	Macintosh: {name: "MACINTOSH", enc: charmap.Macintosh},
	Big5:      {name: "BIG5", enc: traditionalchinese.Big5, multi: true},
	CP949:     {name: "CP949", enc: korean.EUCKR, multi: true},
	Johab:     {name: "JOHAB", multi: true},
	CP866:     {name: "CP866", enc: charmap.CodePage866},
	ANSI1250:  {name: "ANSI_1250", enc: charmap.Windows1250},
	ANSI1251:  {name: "ANSI_1251", enc: charmap.Windows1251},
	ANSI1252:  {name: "ANSI_1252", enc: charmap.Windows1252},
	GB2312:    {name: "GB2312", enc: simplifiedchinese.GBK, multi: true},
	ANSI1253:  {name: "ANSI_1253", enc: charmap.Windows1253},
	ANSI1254:  {name: "ANSI_1254", enc: charmap.Windows1254},
	ANSI1255:  {name: "ANSI_1255", enc: charmap.Windows1255},
	ANSI1256:  {name: "ANSI_1256", enc: charmap.Windows1256},
	ANSI1257:  {name: "ANSI_1257", enc: charmap.Windows1257},
	ANSI874:   {name: "ANSI_874", enc: charmap.Windows874},
	ANSI932:   {name: "ANSI_932", enc: japanese.ShiftJIS, multi: true},
	ANSI936:   {name: "ANSI_936", enc: simplifiedchinese.GBK, multi: true},
	ANSI949:   {name: "ANSI_949", enc: korean.EUCKR, multi: true},
	ANSI950:   {name: "ANSI_950", enc: traditionalchinese.Big5, multi: true},
	ANSI1361:  {name: "ANSI_1361", multi: true},
	UTF16:     {name: "UTF16", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	ANSI1258:  {name: "ANSI_1258", enc: charmap.Windows1258},
}

func (c Codepage) valid() bool { return c >= UTF8 && c < Unknown }

// String returns the DXF $DWGCODEPAGE name, e.g. "ANSI_1252".
func (c Codepage) String() string {
	if !c.valid() {
		return fmt.Sprintf("codepage(%d)", int(c))
	}
	return entries[c].name
}

// Parse maps a DXF $DWGCODEPAGE name (case-insensitive) to its Codepage.
func Parse(name string) (Codepage, error) {
	for c := UTF8; c < Unknown; c++ {
		if strings.EqualFold(entries[c].name, name) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("codepage: unknown name %q", name)
}

// Supported reports whether a real conversion table backs c. Unsupported
// codepages still round-trip bytes through ISO-8859-1.
func (c Codepage) Supported() bool {
	return c == UTF8 || (c.valid() && entries[c].enc != nil)
}

// MultiByte reports whether c uses lead bytes for double-byte characters.
func (c Codepage) MultiByte() bool {
	return c.valid() && entries[c].multi
}

// Encoding returns the x/text encoding for c, or nil for UTF8.
func (c Codepage) Encoding() encoding.Encoding {
	if c == UTF8 {
		return nil
	}
	if c.valid() && entries[c].enc != nil {
		return entries[c].enc
	}
	return charmap.ISO8859_1
}

// MarshalText encodes c as its $DWGCODEPAGE name.
func (c Codepage) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts a $DWGCODEPAGE name.
func (c *Codepage) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
