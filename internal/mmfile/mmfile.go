// Package mmfile acquires the bytes of a drawing file for read-only
// inspection, mapping it into memory where the platform allows.
package mmfile

import (
	"errors"
	"os"
)

// ErrTooLarge is returned when a file does not fit in the address space.
var ErrTooLarge = errors.New("mmfile: file too large to map")

// Release frees whatever Map acquired. It is safe to call more than once.
type Release func() error

func noop() error { return nil }

// Read loads the whole file into memory. Map falls back to it when the
// platform has no mmap or the file is not a regular file.
func Read(path string) ([]byte, Release, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noop, err
	}
	return data, noop, nil
}
