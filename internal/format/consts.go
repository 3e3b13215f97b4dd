// Package format defines the in-arena layout of block headers. Every block in
// an arena starts with a fixed HeaderSize record followed directly by its
// payload. The layout is private to this module; nothing is persisted.
package format

// Block header layout (little-endian, 8-byte fields):
//
//	0x00  size   payload size in bytes
//	0x08  end    arena offset one past the payload (start of the next block)
//	0x10  next   header offset of the next block in the same free list
//	0x18  flags  bit 0 set while the block is free
const (
	// HeaderSize is the number of bytes preceding every payload.
	HeaderSize = 0x20

	SizeFieldOffset  = 0x00
	EndFieldOffset   = 0x08
	NextFieldOffset  = 0x10
	FlagsFieldOffset = 0x18

	// FlagFree marks a block that is linked into a free list.
	FlagFree uint64 = 1 << 0

	// NilLink terminates a free list.
	NilLink uint64 = ^uint64(0)
)
