package format

import "errors"

var (
	// ErrSignatureMismatch indicates the file does not start with a DWG
	// format signature.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrUnsupported indicates a format generation this package cannot parse.
	ErrUnsupported = errors.New("format: unsupported version")
	// ErrCorrupt indicates a structurally invalid header.
	ErrCorrupt = errors.New("format: corrupt header")
	// ErrNotFound indicates a requested locator record is absent.
	ErrNotFound = errors.New("format: section not found")
)
