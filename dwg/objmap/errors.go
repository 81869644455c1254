package objmap

import "errors"

var (
	// ErrCorrupt indicates a section whose size, pairs or checksum do not
	// add up.
	ErrCorrupt = errors.New("objmap: corrupt section")
	// ErrInvalidEntry indicates an entry that cannot be encoded: handle 0 or
	// a handle listed twice.
	ErrInvalidEntry = errors.New("objmap: invalid entry")
)
