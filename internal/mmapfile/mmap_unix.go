//go:build !windows

// Package mmapfile provides zero-copy whole-file access for the chunker,
// header parser, and quote-scan workers to share without each opening its
// own file handle.
package mmapfile

import (
	"fmt"
	"os"
	"syscall"
)

// Map maps the whole of an already-open file read-only into memory.
// The returned slice is valid until Unmap is called.
func Map(f *os.File) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, nil
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	return data, nil
}

// Unmap releases a mapping previously returned by Map.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return syscall.Munmap(data)
}
