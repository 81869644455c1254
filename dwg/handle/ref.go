package handle

import "cmp"

// Key orders references by code first and absolute handle second.
type Key struct {
	Code     Code
	Absolute uint64
}

// Compare returns -1, 0 or +1 like cmp.Compare.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Code, o.Code); c != 0 {
		return c
	}
	return cmp.Compare(k.Absolute, o.Absolute)
}

// Ref is a handle field of a record together with its resolved absolute
// value. The cache remembers which object-table slot the reference resolved
// to and the table generation at the time; the table itself owns the object.
type Ref struct {
	Handle      Handle
	AbsoluteRef uint64

	cacheIndex int
	cacheGen   uint64
	cached     bool
}

// NewRef returns a reference with an already known absolute value.
func NewRef(h Handle, absolute uint64) *Ref {
	return &Ref{Handle: h, AbsoluteRef: absolute}
}

// Key returns the ordering key of r.
func (r *Ref) Key() Key {
	return Key{Code: r.Handle.Code, Absolute: r.AbsoluteRef}
}

// Cached returns the cached object index and the generation it was stored at.
func (r *Ref) Cached() (index int, gen uint64, ok bool) {
	return r.cacheIndex, r.cacheGen, r.cached
}

// SetCache records a successful resolution.
func (r *Ref) SetCache(index int, gen uint64) {
	r.cacheIndex, r.cacheGen, r.cached = index, gen, true
}

// DropCache forgets a previous resolution.
func (r *Ref) DropCache() {
	r.cacheIndex, r.cacheGen, r.cached = 0, 0, false
}

// Bind computes AbsoluteRef from the handle and the companion's handle value.
func (r *Ref) Bind(companion uint64) error {
	abs, err := Absolute(r.Handle, companion)
	if err != nil {
		return err
	}
	if abs != r.AbsoluteRef {
		r.DropCache()
	}
	r.AbsoluteRef = abs
	return nil
}
