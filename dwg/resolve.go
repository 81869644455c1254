package dwg

import (
	"errors"
	"fmt"

	"github.com/joshuapare/dwgkit/dwg/diag"
	"github.com/joshuapare/dwgkit/dwg/handle"
)

// Resolve returns the index of the object ref points at. Relative references
// must already carry their absolute value; use ResolveFor to bind them to a
// companion object first.
func (d *Document) Resolve(ref *handle.Ref) (ObjectIndex, error) {
	return d.resolve(ref, NoObject, d.log)
}

// ResolveFor resolves ref as a field of the object at companion. Relative
// handles are applied to the companion's own handle.
func (d *Document) ResolveFor(ref *handle.Ref, companion ObjectIndex) (ObjectIndex, error) {
	return d.resolve(ref, companion, d.log)
}

// ResolveSilent is ResolveFor without diagnostics, for speculative lookups
// such as probing tables by name.
func (d *Document) ResolveSilent(ref *handle.Ref, companion ObjectIndex) (ObjectIndex, error) {
	return d.resolve(ref, companion, nil)
}

// ResolveAll resolves every reference of the ordered index and returns how
// many failed, with their errors joined.
func (d *Document) ResolveAll() (int, error) {
	var errs []error
	for _, ref := range d.refs.Refs() {
		if _, err := d.resolve(ref, NoObject, d.log); err != nil {
			errs = append(errs, err)
		}
	}
	return len(errs), errors.Join(errs...)
}

func (d *Document) resolve(ref *handle.Ref, companion ObjectIndex, log *diag.Logger) (ObjectIndex, error) {
	if ref == nil {
		return NoObject, fmt.Errorf("%w: nil reference", ErrUnresolvedReference)
	}

	// Binding drops the cache when the companion yields a different target.
	if ref.Handle.Code.Relative() && d.valid(companion) {
		if err := ref.Bind(d.objects[companion].Handle.Value); err != nil {
			log.Info("dwg: cannot apply relative handle", "ref", ref.Handle.String(), "err", err)
			return NoObject, fmt.Errorf("%w: %s: %w", ErrUnresolvedReference, ref.Handle, err)
		}
	}

	if idx, gen, ok := ref.Cached(); ok {
		switch {
		case gen != d.gen:
			log.Handle("dwg: cache from older table generation", "ref", ref.Handle.String(), "cached", gen, "current", d.gen)
			ref.DropCache()
		case idx >= len(d.objects) || d.objects[idx].Handle.Value != ref.AbsoluteRef:
			log.Info("dwg: cached object changed handle", "ref", ref.Handle.String(), "absolute", fmt.Sprintf("%X", ref.AbsoluteRef), "index", idx)
			ref.DropCache()
		default:
			return ObjectIndex(idx), nil
		}
	}

	switch {
	case ref.Handle.Code.Relative() && ref.AbsoluteRef == 0:
		log.Info("dwg: relative handle without companion", "ref", ref.Handle.String())
		return NoObject, fmt.Errorf("%w: relative %s without companion", ErrUnresolvedReference, ref.Handle)
	case !ref.Handle.Code.Relative() && ref.AbsoluteRef == 0:
		ref.AbsoluteRef = ref.Handle.Value
	}

	if ref.AbsoluteRef == 0 {
		return NoObject, fmt.Errorf("%w: null handle %s", ErrUnresolvedReference, ref.Handle)
	}
	i, ok := d.Lookup(ref.AbsoluteRef)
	if !ok {
		log.Info("dwg: unresolved reference", "ref", ref.Handle.String(), "absolute", fmt.Sprintf("%X", ref.AbsoluteRef))
		return NoObject, fmt.Errorf("%w: %X", ErrUnresolvedReference, ref.AbsoluteRef)
	}
	ref.SetCache(int(i), d.gen)
	log.Insane("dwg: resolved", "ref", ref.Handle.String(), "index", i)
	return i, nil
}
