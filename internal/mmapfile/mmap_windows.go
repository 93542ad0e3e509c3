//go:build windows

package mmapfile

import (
	"io"
	"os"
)

// Map falls back to a full read on Windows. Proper Windows mmap
// (CreateFileMapping/MapViewOfFile) is not implemented.
func Map(f *os.File) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// Unmap is a no-op on Windows since Map copies the file into a Go slice.
func Unmap(data []byte) error {
	return nil
}
