package dwg

import "errors"

var (
	// ErrUnresolvedReference indicates a handle that maps to no object.
	ErrUnresolvedReference = errors.New("dwg: unresolved reference")
	// ErrDuplicateHandle indicates two objects claim the same absolute handle.
	// The later object wins the handle map; callers usually log and continue.
	ErrDuplicateHandle = errors.New("dwg: duplicate handle")
	// ErrNoObject indicates an object index outside the table.
	ErrNoObject = errors.New("dwg: no such object")
)
