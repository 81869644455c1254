package dwg

import (
	"errors"

	"github.com/joshuapare/dwgkit/dwg/handle"
	"github.com/joshuapare/dwgkit/dwg/objmap"
)

// ObjectMap returns the handle → address entries of every object with a
// handle, ready for objmap.Encode.
func (d *Document) ObjectMap() []objmap.Entry {
	out := make([]objmap.Entry, 0, len(d.objects))
	for _, obj := range d.objects {
		if obj.Handle.Value != 0 {
			out = append(out, objmap.Entry{Handle: obj.Handle.Value, Address: obj.Address})
		}
	}
	return out
}

// LoadObjectMap adds one object per entry, in entry order. Duplicate handles
// are reported joined; the other entries are still added.
func (d *Document) LoadObjectMap(entries []objmap.Entry) error {
	var errs []error
	for _, e := range entries {
		_, err := d.Add(Object{Handle: handle.New(handle.Own, e.Handle), Address: e.Address})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
