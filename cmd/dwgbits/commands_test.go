package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/crc"
	"github.com/joshuapare/dwgkit/dwg/diag"
	"github.com/joshuapare/dwgkit/dwg/handle"
	"github.com/joshuapare/dwgkit/dwg/objmap"
	"github.com/joshuapare/dwgkit/dwg/version"
)

func fieldFile(t *testing.T) string {
	t.Helper()
	c := bits.New(bits.Options{Version: version.R2000})
	require.NoError(t, c.WriteBS(5))
	require.NoError(t, c.WriteBL(300))
	require.NoError(t, c.WriteBD(1.5))
	require.NoError(t, c.WriteT("abc"))
	require.NoError(t, c.WriteH(handle.New(handle.HardPointer, 0x1F)))
	return writeFile(t, "fields.bin", c.Bytes())
}

func TestReadCommand(t *testing.T) {
	resetFlags()
	path := fieldFile(t)
	readFields = "BS,BL,BD,T,H"

	out, err := captureOutput(t, func() error { return runRead([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, "BS", "300", "1.5", `"abc"`, "5.1.1F")
}

func TestReadCommandYAML(t *testing.T) {
	resetFlags()
	path := fieldFile(t)
	readFields = "bs, bl"
	outFormat = "yaml"

	out, err := captureOutput(t, func() error { return runRead([]string{path}) })
	require.NoError(t, err)

	var fields []fieldView
	require.NoError(t, yaml.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 2)
	assert.Equal(t, fieldView{Index: 0, Kind: "BS", Bit: 0, Width: 10, Value: "5"}, fields[0])
	assert.Equal(t, int64(10), fields[1].Bit)
	assert.Equal(t, "300", fields[1].Value)
}

func TestReadCommandTruncated(t *testing.T) {
	resetFlags()
	path := writeFile(t, "short.bin", []byte{0x41, 0x40})
	readFields = "BS,RL"

	out, err := captureOutput(t, func() error { return runRead([]string{path}) })
	require.ErrorIs(t, err, bits.ErrTruncated)
	assertContains(t, out, "BS")
}

func TestReadCommandBadFields(t *testing.T) {
	resetFlags()
	readFields = "BS,XYZ"
	_, err := captureOutput(t, func() error { return runRead([]string{"unused"}) })
	require.ErrorIs(t, err, bits.ErrOutOfRange)
}

func crcFile(t *testing.T, corrupt bool) string {
	t.Helper()
	c := bits.New(bits.Options{})
	require.NoError(t, c.WriteBytes([]byte("sixteen byte msg")))
	_, err := c.WriteCRC(0, crc.SeedObject)
	require.NoError(t, err)
	b := c.Bytes()
	if corrupt {
		b[3] ^= 0x10
	}
	return writeFile(t, "crc.bin", b)
}

func TestCRCCommandCheck(t *testing.T) {
	resetFlags()
	path := crcFile(t, false)
	crcLength, crcCheck = 16, true

	out, err := captureOutput(t, func() error { return runCRC([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, "match   true")
}

func TestCRCCommandMismatch(t *testing.T) {
	resetFlags()
	path := crcFile(t, true)
	crcLength, crcCheck = 16, true
	outFormat = "json"

	out, err := captureOutput(t, func() error { return runCRC([]string{path}) })
	require.ErrorIs(t, err, bits.ErrCRCMismatch)

	var view crcView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.NotNil(t, view.Match)
	assert.False(t, *view.Match)
	assert.Equal(t, uint32(crc.SeedObject), view.Seed)
}

func TestCRCCommandRange(t *testing.T) {
	resetFlags()
	path := crcFile(t, false)
	crcStart, crcLength = 10, 100
	_, err := captureOutput(t, func() error { return runCRC([]string{path}) })
	require.Error(t, err)

	resetFlags()
	crcWide, crcSeed = true, "0"
	out, err := captureOutput(t, func() error { return runCRC([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, "crc")
}

func TestHeaderCommandJSON(t *testing.T) {
	resetFlags()
	path := buildDrawing(t)
	outFormat = "json"

	out, err := captureOutput(t, func() error { return runHeader([]string{path}, true) })
	require.NoError(t, err)

	var got struct {
		Version  string `json:"version"`
		Codepage string `json:"codepage"`
		CRCValid bool   `json:"crc_valid"`
		Records  []struct {
			Number string `json:"number"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "r2000", got.Version)
	assert.Equal(t, "ANSI_1252", got.Codepage)
	assert.True(t, got.CRCValid)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "objmap", got.Records[0].Number)
}

func TestObjmapCommand(t *testing.T) {
	resetFlags()
	path := buildDrawing(t)

	out, err := captureOutput(t, func() error { return runObjmap([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, "      1F  0x00000200", "3 entries")
}

func TestObjmapCommandYAMLAtOffset(t *testing.T) {
	resetFlags()
	c := bits.New(bits.Options{})
	require.NoError(t, objmap.Encode(c, drawingEntries))
	path := writeFile(t, "map.bin", c.Bytes())
	objmapOffset = 0
	outFormat = "yaml"

	out, err := captureOutput(t, func() error { return runObjmap([]string{path}) })
	require.NoError(t, err)

	var entries []entryView
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, entryView{Handle: "1f", Address: 0x200}, entries[2])
}

func TestObjmapLookup(t *testing.T) {
	resetFlags()
	path := buildDrawing(t)

	objmapLookup = "1f"
	out, err := captureOutput(t, func() error { return runObjmap([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, "1F  object 2  at 0x200")

	objmapLookup = "99"
	_, err = captureOutput(t, func() error { return runObjmap([]string{path}) })
	require.ErrorContains(t, err, "not in object map")
}

func TestSentinelsCommand(t *testing.T) {
	resetFlags()
	data := make([]byte, 8, 40)
	data = append(data, bits.SentinelClassesBegin[:]...)
	data = append(data, bits.SentinelClassesEnd[:]...)
	path := writeFile(t, "s.bin", data)
	outFormat = "json"

	out, err := captureOutput(t, func() error { return runSentinels([]string{path}) })
	require.NoError(t, err)

	var found []sentinelView
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	assert.Equal(t, []sentinelView{
		{Name: "classes-begin", Offset: 8},
		{Name: "classes-end", Offset: 24},
	}, found)
}

func TestVersionFormats(t *testing.T) {
	resetFlags()
	out, err := captureOutput(t, runFormats)
	require.NoError(t, err)
	assertContains(t, out, "r2000    AC1015", "r2010    AC1024")
}

func TestNewLogger(t *testing.T) {
	resetFlags()
	traceLevel = "trace"
	logFile = filepath.Join(t.TempDir(), "trace.log")
	log, closeLog, err := newLogger()
	require.NoError(t, err)
	assert.Equal(t, diag.Trace, log.Level())
	log.Trace("hello")
	require.NoError(t, closeLog())
	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")

	traceLevel = "loud"
	_, _, err = newLogger()
	require.Error(t, err)
	resetFlags()
}

func TestUnknownFormat(t *testing.T) {
	resetFlags()
	outFormat = "xml"
	require.Error(t, runFormats())
	resetFlags()
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, `"a\x00"`, formatValue("a\x00"))
	assert.Equal(t, "0aff", formatValue([]byte{0x0a, 0xff}))
	assert.Equal(t, "(1, 2.5)", formatValue(bits.Point2{X: 1, Y: 2.5}))
	assert.Equal(t, "day 2451545 + 500ms", formatValue(bits.Timestamp{Days: 2451545, Millis: 500}))
	assert.Equal(t, "true", formatValue(true))
}
