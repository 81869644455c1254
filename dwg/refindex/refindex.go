// Package refindex keeps the references of a document ordered by
// (code, absolute handle) for reverse lookup.
package refindex

import (
	"fmt"
	"slices"

	"github.com/joshuapare/dwgkit/dwg/handle"
)

// State tells how Find searches the index.
type State uint8

const (
	// Indexed means keys are unique and sorted; Find uses binary search.
	Indexed State = iota
	// Degraded means a duplicate key was inserted; Find scans linearly and
	// returns the first match in insertion order among equal keys.
	Degraded
)

func (s State) String() string {
	switch s {
	case Indexed:
		return "indexed"
	case Degraded:
		return "degraded"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Index is a sorted slice of references. The zero value is an empty,
// indexed index. Not safe for concurrent use.
type Index struct {
	refs  []*handle.Ref
	state State
}

// New returns an index with room for n references.
func New(n int) *Index {
	return &Index{refs: make([]*handle.Ref, 0, max(n, 0))}
}

// Len returns the number of stored references, duplicates included.
func (x *Index) Len() int { return len(x.refs) }

// State returns the lookup mode.
func (x *Index) State() State { return x.state }

// Refs returns the stored references in key order. The slice is shared.
func (x *Index) Refs() []*handle.Ref { return x.refs }

func search(refs []*handle.Ref, k handle.Key) (int, bool) {
	return slices.BinarySearchFunc(refs, k, func(r *handle.Ref, k handle.Key) int {
		return r.Key().Compare(k)
	})
}

// Find returns the reference stored for (code, absolute), or nil.
func (x *Index) Find(code handle.Code, absolute uint64) *handle.Ref {
	k := handle.Key{Code: code, Absolute: absolute}
	if x.state == Degraded {
		for _, r := range x.refs {
			if r.Key() == k {
				return r
			}
		}
		return nil
	}
	if i, ok := search(x.refs, k); ok {
		return x.refs[i]
	}
	return nil
}

// Insert stores ref at its sorted position. Equal keys keep insertion
// order. A duplicate key degrades the index and returns ErrDuplicateHandle
// with the reference stored.
func (x *Index) Insert(ref *handle.Ref) error {
	if ref == nil {
		return nil
	}
	k := ref.Key()
	i, found := search(x.refs, k)
	for found && i < len(x.refs) && x.refs[i].Key() == k {
		i++
	}
	x.refs = slices.Insert(x.refs, i, ref)
	if found {
		x.state = Degraded
		return fmt.Errorf("%w: %s", ErrDuplicateHandle, ref.Handle)
	}
	return nil
}

// Reset empties the index and returns it to the indexed state.
func (x *Index) Reset() {
	clear(x.refs)
	x.refs = x.refs[:0]
	x.state = Indexed
}
