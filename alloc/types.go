package alloc

import "github.com/joshuapare/arenakit/internal/format"

// Ref is the arena offset of a payload returned by Alloc.
type Ref uint64

const (
	// HeaderSize is the per-block overhead preceding every payload.
	HeaderSize = format.HeaderSize

	// MinBlockSize is the smallest payload ever carved; smaller requests are raised to it.
	MinBlockSize = 4
)

// Allocator defines the interface shared by the plain and the locked allocator.
//
// Implementations:
//   - BlockAllocator: single-owner allocator, no synchronization
//   - SafeAllocator: mutex-protected wrapper for shared use
type Allocator interface {
	// Alloc returns a handle and a slice of exactly size payload bytes.
	// Contents are unspecified.
	Alloc(size int) (Ref, []byte, error)

	// Free returns a live block to the allocator. Freeing anything other
	// than a live handle from this allocator is undefined.
	Free(ref Ref)

	// Bytes returns the whole payload of a live block, which may be larger
	// than the size originally requested.
	Bytes(ref Ref) []byte

	// Close releases the arena. All outstanding handles and slices become invalid.
	Close() error
}
