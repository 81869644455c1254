// Package dwg holds the object table of a drawing and resolves handle
// references against it.
//
// Objects live in a single growable slice and are addressed by ObjectIndex.
// An integer hash map takes absolute handles to indices, and an ordered index
// shares absolute references between records. References cache the index
// they resolved to together with the table generation; any relocation of the
// table bumps the generation and thereby invalidates every cache at once.
//
// A Document is not safe for concurrent use. Independent documents may be
// used from different goroutines.
package dwg
