// Package alloc provides a fixed-capacity arena allocator with segregated
// free lists.
//
// # Overview
//
// A BlockAllocator maps one anonymous region from the operating system and
// carves it into variable-size blocks. Every block is a 32-byte header
// followed by its payload; handles are integer offsets into the region, so no
// Go pointers into the arena are ever stored. Memory is only returned to the
// OS when the whole arena is closed.
//
// # Allocator Interface
//
//   - Alloc(size): return a handle and a payload slice of exactly size bytes
//   - Free(ref): return a block to its size class
//   - Bytes(ref): the full payload of a live block
//   - Close(): unmap the arena; every outstanding slice becomes invalid
//
// # Profiles
//
// Two size-class profiles are predefined:
//
//	fast     8 classes:  16 32 64 128 256 512 1024 | overflow
//	precise 20 classes:   4 8 16 32 48 64 80 96 128 160 192 256
//	                    320 384 512 640 768 896 1024 | overflow
//
// The fast profile only reuses the head of the request's class and never
// splits or merges blocks. The precise profile scans low classes first-fit
// and high classes best-fit, splits the tail off a larger free block before
// touching fresh arena space, and merges a freed block with its physical
// successor when that successor is free.
//
// # Usage Example
//
//	a, err := alloc.New(alloc.Config{Capacity: 16 << 20, Profile: &alloc.ProfilePrecise})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	ref, buf, err := a.Alloc(128)
//	if err != nil {
//	    return err // errors.Is(err, alloc.ErrArenaExhausted)
//	}
//	copy(buf, payload)
//	a.Free(ref)
//
// # Limits
//
// Coalescing is forward-only: a freed block never merges into the block
// physically before it, because no back link is kept. The arena never grows;
// running out of space returns ErrArenaExhausted (MustAlloc panics instead).
// Free performs no validation: freeing a foreign, already-freed or
// never-allocated handle corrupts the allocator.
//
// # Concurrency
//
// BlockAllocator is not safe for concurrent use. Use one allocator per
// goroutine, or wrap a shared one with NewSafe.
package alloc
