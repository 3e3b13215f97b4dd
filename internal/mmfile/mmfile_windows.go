//go:build windows

// Package mmfile provides platform-specific helpers for memory mappings:
// anonymous arenas and read-only file views.
package mmfile

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Anonymous reserves and commits size bytes of zero-filled, read-write memory.
// The returned cleanup releases the whole region; calling it again is a no-op.
func Anonymous(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: VirtualAlloc of %d bytes: %w", size, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size) //nolint:gosec // region owned until cleanup
	released := false
	cleanup := func() error {
		if released {
			return nil
		}
		released = true
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}
	return data, cleanup, nil
}

// Map reads the entire file; trace files are small enough that a view is not needed.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
