package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/dwgkit/dwg"
	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/handle"
	"github.com/joshuapare/dwgkit/dwg/objmap"
	"github.com/joshuapare/dwgkit/internal/format"
)

var (
	objmapOffset int64
	objmapLookup string
	objmapCodec  codecFlags
)

func init() {
	rootCmd.AddCommand(newObjmapCmd())
}

func newObjmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objmap <file>",
		Short: "Decode the handle to address object map",
		Long: `The objmap command decodes the object map and lists every handle with
the file address of its object. Without --offset the map is located
through the file header. With --lookup a single handle is resolved.

Example:
  dwgbits objmap drawing.dwg
  dwgbits objmap drawing.dwg --lookup 1F
  dwgbits objmap dump.bin --offset 0 --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjmap(args)
		},
	}
	cmd.Flags().Int64Var(&objmapOffset, "offset", -1, "Byte offset of the map (-1 to use the file header)")
	cmd.Flags().StringVar(&objmapLookup, "lookup", "", "Resolve one handle (hex) instead of listing")
	objmapCodec.register(cmd)
	return cmd
}

type entryView struct {
	Handle  string `json:"handle" yaml:"handle"`
	Address uint64 `json:"address" yaml:"address"`
}

type lookupView struct {
	Handle  string `json:"handle" yaml:"handle"`
	Index   int    `json:"index" yaml:"index"`
	Address uint64 `json:"address" yaml:"address"`
}

func runObjmap(args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	log, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	opts, err := objmapCodec.options(log)
	if err != nil {
		return err
	}
	data, release, err := loadFile(args[0])
	if err != nil {
		return err
	}
	defer release()

	c := bits.FromBytes(data, opts)
	offset := objmapOffset
	if offset < 0 {
		h, err := format.ParseHeader(c)
		if err != nil {
			return fmt.Errorf("locate object map: %w", err)
		}
		rec, err := h.Section(format.SectionObjectMap)
		if err != nil {
			return fmt.Errorf("locate object map: %w", err)
		}
		offset = int64(rec.Address)
		opts.Version, opts.Codepage = h.Version, h.Codepage
		printVerbose("object map at %#x, %d bytes\n", rec.Address, rec.Size)
	}
	if err := c.SetPosition(offset * 8); err != nil {
		return err
	}
	entries, decodeErr := objmap.Decode(c)
	if decodeErr != nil && len(entries) == 0 {
		return decodeErr
	}

	doc := dwg.New(&dwg.Options{Version: opts.Version, Codepage: opts.Codepage, Capacity: len(entries), Log: log})
	if err := doc.LoadObjectMap(entries); err != nil {
		printError("%v\n", err)
	}
	st := doc.MapStats()
	printVerbose("%d objects, map capacity %d, longest probe %d\n", doc.Len(), st.Capacity, st.MaxProbe)

	if objmapLookup != "" {
		if err := lookupHandle(doc, objmapLookup); err != nil {
			return err
		}
		return decodeErr
	}

	if structured() {
		views := make([]entryView, len(entries))
		for i, e := range entries {
			views[i] = entryView{Handle: strconv.FormatUint(e.Handle, 16), Address: e.Address}
		}
		if err := printStructured(views); err != nil {
			return err
		}
		return decodeErr
	}
	for _, e := range entries {
		printInfo("%8X  %#08x\n", e.Handle, e.Address)
	}
	printInfo("%d entries\n", len(entries))
	return decodeErr
}

func lookupHandle(doc *dwg.Document, hex string) error {
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return fmt.Errorf("invalid handle %q: %w", hex, err)
	}
	ref, err := doc.AddRef(handle.HardPointer, v, dwg.NoObject)
	if err != nil {
		return err
	}
	i, err := doc.Resolve(ref)
	if err != nil {
		if errors.Is(err, dwg.ErrUnresolvedReference) {
			return fmt.Errorf("handle %X not in object map", v)
		}
		return err
	}
	view := lookupView{Handle: strconv.FormatUint(v, 16), Index: int(i), Address: doc.Object(i).Address}
	if structured() {
		return printStructured(view)
	}
	printInfo("%X  object %d  at %#x\n", v, view.Index, view.Address)
	return nil
}
