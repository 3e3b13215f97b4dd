package alloc

import "sync"

// SafeAllocator is a mutex-protected wrapper around BlockAllocator for hosts
// that share one arena between goroutines. Every call takes the lock.
type SafeAllocator struct {
	mu sync.Mutex
	a  *BlockAllocator
}

// NewSafe wraps a. The caller must stop using a directly.
func NewSafe(a *BlockAllocator) *SafeAllocator {
	return &SafeAllocator{a: a}
}

// Alloc thread-safely allocates size bytes.
func (s *SafeAllocator) Alloc(size int) (Ref, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// Free thread-safely returns a block.
func (s *SafeAllocator) Free(ref Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free(ref)
}

// Bytes thread-safely returns the payload of a live block.
func (s *SafeAllocator) Bytes(ref Ref) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Bytes(ref)
}

// Stats thread-safely snapshots the counters.
func (s *SafeAllocator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// Close thread-safely releases the arena.
func (s *SafeAllocator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Close()
}

var (
	_ Allocator = (*BlockAllocator)(nil)
	_ Allocator = (*SafeAllocator)(nil)
)
