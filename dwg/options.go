package dwg

import (
	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/diag"
	"github.com/joshuapare/dwgkit/dwg/version"
)

// Options configures a Document.
type Options struct {
	// Version is the format of the drawing. It decides whether references may
	// be stored relative to their owning object.
	Version version.Version

	// Codepage converts pre-R2007 text.
	Codepage codepage.Codepage

	// Capacity is the number of objects the table holds before it relocates.
	Capacity int

	// Log receives resolver and codec diagnostics. Nil is silent.
	Log *diag.Logger
}

// DefaultOptions returns options for an R2000 drawing in ANSI_1252.
func DefaultOptions() *Options {
	return &Options{
		Version:  version.R2000,
		Codepage: codepage.ANSI1252,
		Capacity: 256,
	}
}
