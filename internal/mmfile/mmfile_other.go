//go:build !unix

package mmfile

// Map reads the entire file; mmap is only used on unix.
func Map(path string) ([]byte, Release, error) {
	return Read(path)
}
