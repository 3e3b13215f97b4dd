package alloc

import "errors"

var (
	// ErrArenaMap indicates the operating system refused the arena mapping.
	ErrArenaMap = errors.New("alloc: arena mapping failed")

	// ErrArenaExhausted indicates no free block fits and the bump cursor would pass capacity.
	ErrArenaExhausted = errors.New("alloc: arena exhausted")

	// ErrBadSize indicates a non-positive allocation size or an unusable capacity.
	ErrBadSize = errors.New("alloc: bad size")

	// ErrBadProfile indicates a size-class profile that is empty, unordered or out of range.
	ErrBadProfile = errors.New("alloc: bad size-class profile")

	// ErrClosed indicates use of an allocator after Close.
	ErrClosed = errors.New("alloc: allocator closed")
)
