package codepage

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

const (
	escapePrefix = `\U+`
	escapeLen    = len(escapePrefix) + 4
)

// Decode converts codepage bytes to UTF-8 and expands \U+XXXX escapes.
// Bytes with no mapping in the codepage become U+FFFD.
func Decode(c Codepage, b []byte) string {
	var s string
	if enc := c.Encoding(); enc == nil {
		s = strings.ToValidUTF8(string(b), "�")
	} else {
		out, _, err := transform.String(enc.NewDecoder(), string(b))
		if err != nil {
			out = strings.ToValidUTF8(string(b), "�")
		}
		s = out
	}
	return Unescape(s)
}

// Encode converts UTF-8 text to codepage bytes. Characters the codepage
// cannot hold are written as \U+XXXX escapes.
//
// Text that already contains a well-formed \U+XXXX sequence is written
// unchanged, so Decode reads it back as the escaped character: `\U+0041`
// round-trips to "A". Drawing text has no way to quote the backslash.
func Encode(c Codepage, s string) []byte {
	if c == UTF8 {
		return []byte(s)
	}
	enc := c.Encoding().NewEncoder()
	asciiSafe := c != UTF16
	out := make([]byte, 0, len(s))
	var tmp [utf8.UTFMax]byte
	for _, r := range s {
		if asciiSafe && r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		if c != USASCII && r != utf8.RuneError {
			n := utf8.EncodeRune(tmp[:], r)
			if b, err := enc.Bytes(tmp[:n]); err == nil {
				out = append(out, b...)
				continue
			}
		}
		out = appendEscape(out, r)
	}
	return out
}

// Escape replaces every non-ASCII character with its \U+XXXX form.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		b.Write(appendEscape(nil, r))
	}
	return b.String()
}

func appendEscape(dst []byte, r rune) []byte {
	if r > 0xFFFF {
		hi, lo := utf16.EncodeRune(r)
		dst = fmt.Appendf(dst, `\U+%04X`, hi)
		return fmt.Appendf(dst, `\U+%04X`, lo)
	}
	return fmt.Appendf(dst, `\U+%04X`, r)
}

// Unescape expands \U+XXXX escapes, joining surrogate pairs. Malformed or
// unpaired escapes are left as literal text.
func Unescape(s string) string {
	if !strings.Contains(s, escapePrefix) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, ok := escapeAt(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}
		if utf16.IsSurrogate(r) {
			lo, ok := escapeAt(s, i+escapeLen)
			if pair := utf16.DecodeRune(r, lo); ok && pair != utf8.RuneError {
				b.WriteRune(pair)
				i += 2 * escapeLen
				continue
			}
			b.WriteString(s[i : i+escapeLen])
			i += escapeLen
			continue
		}
		b.WriteRune(r)
		i += escapeLen
	}
	return b.String()
}

func escapeAt(s string, i int) (rune, bool) {
	if i+escapeLen > len(s) || s[i:i+len(escapePrefix)] != escapePrefix {
		return 0, false
	}
	var r rune
	for _, c := range []byte(s[i+len(escapePrefix) : i+escapeLen]) {
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		default:
			return 0, false
		}
	}
	return r, true
}
