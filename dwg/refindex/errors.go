package refindex

import "errors"

// ErrDuplicateHandle is returned by Insert when a reference with the same
// code and absolute handle is already present. The reference is stored
// anyway and the index switches to linear lookup.
var ErrDuplicateHandle = errors.New("refindex: duplicate handle")
