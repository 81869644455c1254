// Package version enumerates the DWG on-disk format generations and the
// encoding switches that depend on them.
package version

import (
	"fmt"
	"strings"
)

// Version identifies a DWG format generation. The ordering is chronological,
// so comparisons like v >= R2007 select the newer encodings.
type Version int

const (
	Invalid Version = iota
	R1_1            // MC0.0
	R1_2            // AC1.2
	R1_4            // AC1.40
	R2_0            // AC1.50
	R2_1            // AC2.10
	R2_5            // AC1002
	R2_6            // AC1003
	R9              // AC1004
	R10             // AC1006
	R11             // AC1009, also R12
	R13b1           // AC1012 beta
	R13             // AC1012
	R13c3           // AC1013
	R14             // AC1014
	R2000           // AC1015
	R2004           // AC1018
	R2007           // AC1021
	R2010           // AC1024
	R2013           // AC1027
	R2018           // AC1032
	After           // unknown newer release
)

type info struct {
	magic string
	name  string
}

var table = [...]info{
	Invalid: {"", "invalid"},
	R1_1:    {"MC0.0", "r1.1"},
	R1_2:    {"AC1.2", "r1.2"},
	R1_4:    {"AC1.40", "r1.4"},
	R2_0:    {"AC1.50", "r2.0"},
	R2_1:    {"AC2.10", "r2.10"},
	R2_5:    {"AC1002", "r2.5"},
	R2_6:    {"AC1003", "r2.6"},
	R9:      {"AC1004", "r9"},
	R10:     {"AC1006", "r10"},
	R11:     {"AC1009", "r11"},
	R13b1:   {"AC1012", "r13b1"},
	R13:     {"AC1012", "r13"},
	R13c3:   {"AC1013", "r13c3"},
	R14:     {"AC1014", "r14"},
	R2000:   {"AC1015", "r2000"},
	R2004:   {"AC1018", "r2004"},
	R2007:   {"AC1021", "r2007"},
	R2010:   {"AC1024", "r2010"},
	R2013:   {"AC1027", "r2013"},
	R2018:   {"AC1032", "r2018"},
	After:   {"", "after"},
}

// String returns the short release name, e.g. "r2000".
func (v Version) String() string {
	if v < Invalid || v > After {
		return fmt.Sprintf("version(%d)", int(v))
	}
	return table[v].name
}

// Magic returns the six-byte file signature ("AC1015") or "" when the
// generation has none of its own.
func (v Version) Magic() string {
	if v < Invalid || v > After {
		return ""
	}
	return table[v].magic
}

// Valid reports whether v names a concrete generation.
func (v Version) Valid() bool {
	return v > Invalid && v < After
}

// FromMagic maps a file signature to its generation. AC1012 resolves to R13.
func FromMagic(magic string) (Version, error) {
	for v := R1_1; v < After; v++ {
		if v == R13b1 {
			continue
		}
		if table[v].magic == magic {
			return v, nil
		}
	}
	return Invalid, fmt.Errorf("version: unknown magic %q", magic)
}

// Parse accepts a release name ("r2000", "R2000", "2000") or a magic ("AC1015").
func Parse(s string) (Version, error) {
	if strings.HasPrefix(s, "AC") || strings.HasPrefix(s, "MC") {
		return FromMagic(s)
	}
	name := strings.ToLower(s)
	if !strings.HasPrefix(name, "r") {
		name = "r" + name
	}
	for v := R1_1; v < After; v++ {
		if table[v].name == name {
			return v, nil
		}
	}
	return Invalid, fmt.Errorf("version: unknown release %q", s)
}

// PreR13 reports whether v uses the old entity-section layout with absolute
// handles only.
func (v Version) PreR13() bool { return v < R13b1 }

// RelativeHandles reports whether handle fields may be written as offsets
// from the owning object's handle.
func (v Version) RelativeHandles() bool { return v >= R13b1 }

// WideStrings reports whether T fields are UCS-2 (TU) rather than codepage
// text (TV).
func (v Version) WideStrings() bool { return v >= R2007 }

// PackedObjectType reports whether the object type is stored as BOT rather
// than BS.
func (v Version) PackedObjectType() bool { return v >= R2010 }

// DefaultedVectors reports whether BT and BE carry a leading default bit.
func (v Version) DefaultedVectors() bool { return v >= R2000 }

// MarshalText encodes v as its release name.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText accepts anything Parse does.
func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
