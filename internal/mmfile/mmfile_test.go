package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMapContents(t *testing.T) {
	want := []byte("AC1015\x00\x00\x00\x00\x00\x0f\x01")
	path := writeTemp(t, "drawing.dwg", want)

	data, release, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, want, data)
	require.NoError(t, release())
	require.NoError(t, release(), "second release is a no-op")
}

func TestMapEmpty(t *testing.T) {
	path := writeTemp(t, "empty.dwg", nil)

	data, release, err := Map(path)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, release)
	require.NoError(t, release())
}

func TestMapMissing(t *testing.T) {
	_, release, err := Map(filepath.Join(t.TempDir(), "missing.dwg"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, release())
}

func TestRead(t *testing.T) {
	path := writeTemp(t, "r.bin", []byte{0xde, 0xad})
	data, release, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad}, data)
	require.NoError(t, release())
}
