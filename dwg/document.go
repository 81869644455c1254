package dwg

import (
	"errors"
	"fmt"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/diag"
	"github.com/joshuapare/dwgkit/dwg/handle"
	"github.com/joshuapare/dwgkit/dwg/inthash"
	"github.com/joshuapare/dwgkit/dwg/refindex"
	"github.com/joshuapare/dwgkit/dwg/version"
)

// ObjectIndex is the position of an object in the table.
type ObjectIndex int

// NoObject marks the absence of an object, e.g. a missing companion.
const NoObject ObjectIndex = -1

// Object is one record of the table as far as handles are concerned.
type Object struct {
	Handle  handle.Handle
	Index   uint32
	Address uint64 // file offset of the record
	Type    uint16
	Size    uint32 // record size in bytes
}

// Document owns the object table, the handle map and the reference index.
type Document struct {
	version  version.Version
	codepage codepage.Codepage
	log      *diag.Logger

	objects  []Object
	byHandle *inthash.Map
	refs     *refindex.Index
	gen      uint64
}

// New returns an empty document. A nil opts uses DefaultOptions.
func New(opts *Options) *Document {
	if opts == nil {
		opts = DefaultOptions()
	}
	n := max(opts.Capacity, 0)
	return &Document{
		version:  opts.Version,
		codepage: opts.Codepage,
		log:      opts.Log,
		objects:  make([]Object, 0, n),
		byHandle: inthash.New(n),
		refs:     refindex.New(n),
	}
}

// Version returns the drawing format.
func (d *Document) Version() version.Version { return d.version }

// Codepage returns the drawing codepage.
func (d *Document) Codepage() codepage.Codepage { return d.codepage }

// Log returns the diagnostics logger, possibly nil.
func (d *Document) Log() *diag.Logger { return d.log }

// Len returns the number of objects.
func (d *Document) Len() int { return len(d.objects) }

// Generation counts table relocations. Cached resolutions from an older
// generation are not trusted.
func (d *Document) Generation() uint64 { return d.gen }

// MapStats reports the fill of the handle map.
func (d *Document) MapStats() inthash.Stats { return d.byHandle.Stats() }

// Refs returns the ordered reference index.
func (d *Document) Refs() *refindex.Index { return d.refs }

// NewChain returns a bit chain over b set up with the document's version,
// codepage and logger.
func (d *Document) NewChain(b []byte) *bits.Chain {
	return bits.FromBytes(b, bits.Options{Version: d.version, Codepage: d.codepage, Log: d.log})
}

func (d *Document) valid(i ObjectIndex) bool { return i >= 0 && int(i) < len(d.objects) }

// Object returns the object at i, or nil. The pointer is valid until the
// table next grows.
func (d *Document) Object(i ObjectIndex) *Object {
	if !d.valid(i) {
		return nil
	}
	return &d.objects[i]
}

// Objects returns the table. The slice is shared.
func (d *Document) Objects() []Object { return d.objects }

// Add appends obj and maps its handle unless the handle is 0. If another
// object already holds the handle, the new object takes it over and
// ErrDuplicateHandle is returned along with the valid index.
func (d *Document) Add(obj Object) (ObjectIndex, error) {
	if len(d.objects) == cap(d.objects) {
		d.gen++
		d.log.Trace("dwg: object table relocates", "len", len(d.objects), "generation", d.gen)
	}
	i := ObjectIndex(len(d.objects))
	obj.Index = uint32(i)
	obj.Handle = obj.Handle.Fixup()
	d.objects = append(d.objects, obj)
	if obj.Handle.Value == 0 {
		return i, nil
	}
	return i, d.mapHandle(obj.Handle.Value, i)
}

func (d *Document) mapHandle(value uint64, i ObjectIndex) error {
	prev, dup := d.byHandle.Get(value)
	if err := d.byHandle.Set(value, uint64(i)); err != nil {
		return err
	}
	if dup && prev != uint64(i) && d.valid(ObjectIndex(prev)) && d.objects[prev].Handle.Value == value {
		d.log.Err("dwg: duplicate handle", "handle", fmt.Sprintf("%X", value), "first", prev, "second", i)
		return fmt.Errorf("%w: %X at objects %d and %d", ErrDuplicateHandle, value, prev, i)
	}
	return nil
}

// SetHandle assigns a new absolute handle value to the object at i.
func (d *Document) SetHandle(i ObjectIndex, value uint64) error {
	if !d.valid(i) {
		return fmt.Errorf("%w: %d", ErrNoObject, i)
	}
	obj := &d.objects[i]
	obj.Handle = handle.New(obj.Handle.Code, value)
	if value == 0 {
		return nil
	}
	return d.mapHandle(value, i)
}

// Truncate drops every object from index n on. Their handles stay in the map
// until RebuildMap; the resolver rejects such stale entries.
func (d *Document) Truncate(n int) {
	if n < 0 || n >= len(d.objects) {
		return
	}
	clear(d.objects[n:])
	d.objects = d.objects[:n]
	d.gen++
	d.log.Trace("dwg: object table truncated", "len", n, "generation", d.gen)
}

// RebuildMap recomputes the handle map from the table. Duplicate handles are
// reported joined; the last object with a handle wins it.
func (d *Document) RebuildMap() error {
	d.byHandle.Reset(len(d.objects))
	var errs []error
	for i := range d.objects {
		v := d.objects[i].Handle.Value
		if v == 0 {
			continue
		}
		if err := d.mapHandle(v, ObjectIndex(i)); err != nil {
			errs = append(errs, err)
		}
	}
	d.gen++
	return errors.Join(errs...)
}

// Lookup returns the index of the object holding the absolute handle.
func (d *Document) Lookup(absolute uint64) (ObjectIndex, bool) {
	v, ok := d.byHandle.Get(absolute)
	if !ok || v >= uint64(len(d.objects)) || d.objects[v].Handle.Value != absolute {
		return NoObject, false
	}
	return ObjectIndex(v), true
}

// AddRef returns a reference with the absolute code to the given handle.
//
// Without a companion the reference is shared: a second request for the same
// code and handle returns the reference created first. With a valid
// companion the handle takes the cheapest relative encoding against it, and
// code is kept whenever the absolute form is chosen: before R13, for a zero
// delta, or when the companion has no handle. Such references belong to the
// companion alone and are not shared. Relative codes fail with
// handle.ErrInvalidCode.
func (d *Document) AddRef(code handle.Code, absolute uint64, companion ObjectIndex) (*handle.Ref, error) {
	if code.Relative() {
		return nil, fmt.Errorf("%w: %s needs an absolute code and a companion", handle.ErrInvalidCode, code)
	}
	if companion != NoObject {
		if !d.valid(companion) {
			return nil, fmt.Errorf("%w: relative reference to %X", handle.ErrNoCompanion, absolute)
		}
		h, err := handle.Normalize(code, absolute, d.objects[companion].Handle.Value, d.version.RelativeHandles())
		if err != nil {
			return nil, err
		}
		return handle.NewRef(h, absolute), nil
	}
	if !code.Valid() {
		return nil, fmt.Errorf("%w: %s", handle.ErrInvalidCode, code)
	}
	if r := d.refs.Find(code, absolute); r != nil {
		return r, nil
	}
	ref := handle.NewRef(handle.New(code, absolute), absolute)
	if err := d.refs.Insert(ref); err != nil {
		d.log.Err("dwg: reference index degraded", "err", err)
		return ref, err
	}
	return ref, nil
}
