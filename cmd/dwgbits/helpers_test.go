package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/objmap"
	"github.com/joshuapare/dwgkit/dwg/version"
	"github.com/joshuapare/dwgkit/internal/format"
)

// resetFlags restores every package-level flag to its default.
func resetFlags() {
	verbose, quiet = false, false
	outFormat, traceLevel, logFile = "text", "silent", ""
	readOffset, readFields = 0, ""
	readCodec = codecFlags{version: "r2000", codepage: "ANSI_1252"}
	objmapOffset, objmapLookup = -1, ""
	objmapCodec = codecFlags{version: "r2000", codepage: "ANSI_1252"}
	crcStart, crcLength, crcSeed = 0, -1, ""
	crcWide, crcCheck, crcBE = false, false, false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected ...string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

var drawingEntries = []objmap.Entry{
	{Handle: 0x01, Address: 0x100},
	{Handle: 0x02, Address: 0x180},
	{Handle: 0x1F, Address: 0x200},
}

// buildDrawing writes an R2000 file header whose only locator points at an
// object map placed right after it.
func buildDrawing(t *testing.T) string {
	t.Helper()
	hdrLen := format.RecordsOffset + format.RecordSize + 2 + 16
	h := format.Header{
		Version:  version.R2000,
		Codepage: codepage.ANSI1252,
		Records:  []format.Record{{Number: format.SectionObjectMap, Address: uint32(hdrLen)}},
	}
	c := bits.New(bits.Options{Version: version.R2000})
	require.NoError(t, format.WriteHeader(c, &h))
	require.Equal(t, int64(hdrLen), c.Byte())
	require.NoError(t, objmap.Encode(c, drawingEntries))

	h.Records[0].Size = uint32(c.Len() - hdrLen)
	require.NoError(t, format.WriteHeader(c, &h))
	return writeFile(t, "drawing.dwg", c.Bytes())
}
