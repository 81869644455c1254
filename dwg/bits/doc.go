// Package bits reads and writes the bit-packed primitives of DWG files.
//
// A Chain is a cursor over a byte buffer with a single bit position. Bits are
// consumed most significant first within each byte; multi-byte raw values are
// little-endian. Every read bounds-checks against the logical length of the
// buffer and fails with ErrTruncated instead of touching memory past it. A
// failed read leaves the position where it was.
//
// Writes grow the buffer in fixed chunks up to Options.MaxSize. Bytes between
// the old end and a write that lands past it are zero.
//
// Primitive names follow the file format documentation:
//
//	B, BB, 3B, 4BITS    1, 2, 3 and 4 raw bits
//	RC, RS, RL, RLL     raw 8, 16, 32, 64 bit integers (d suffix: signed)
//	RD                  raw IEEE double
//	BS, BL, BLL, BD     compacted short, long, long long and double
//	MC, UMC, MS         modular char (signed, unsigned) and modular short
//	DD                  double with a default value
//	BT, BE              thickness and extrusion with single-bit defaults
//	BOT                 object type (R2010+)
//	TF, TV, TU, T       fixed, codepage, UCS-2 and version-dependent text
//	H                   handle reference
//	CRC                 16-bit checksum slot
package bits
