package alloc

// allocatorStats holds internal allocator counters.
type allocatorStats struct {
	AllocCalls      int   // Total Alloc() calls that reached the engine
	FreeCalls       int   // Total Free() calls
	BytesRequested  int64 // Sum of sizes handed out
	HeadHits        int   // Fast profile: head of class reused
	FirstFitHits    int   // Precise profile: first-fit reuse
	BestFitHits     int   // Precise profile: best-fit reuse
	SplitCount      int   // Blocks carved from a larger free block
	BumpCount       int   // Blocks carved from fresh arena space
	CoalesceForward int   // Successors absorbed on Free
}

// Stats is a snapshot of allocator counters and arena occupancy.
type Stats struct {
	Profile  string
	Capacity int
	Cursor   int

	AllocCalls      int
	FreeCalls       int
	BytesRequested  int64
	HeadHits        int
	FirstFitHits    int
	BestFitHits     int
	SplitCount      int
	BumpCount       int
	CoalesceForward int

	FreeBlocks int // Blocks currently on a free list
	FreeBytes  int // Payload bytes held by those blocks
}

// BucketInfo describes one free list.
type BucketInfo struct {
	Class      int
	UpperBound int // 0 for the overflow class
	Count      int
	Bytes      int // Sum of payload sizes on the list
	Largest    int
}

// Stats returns current allocator statistics. It walks every free list.
func (a *BlockAllocator) Stats() Stats {
	s := a.stats
	out := Stats{
		Profile:         a.profile.Name,
		Capacity:        a.capacity,
		Cursor:          a.cursor,
		AllocCalls:      s.AllocCalls,
		FreeCalls:       s.FreeCalls,
		BytesRequested:  s.BytesRequested,
		HeadHits:        s.HeadHits,
		FirstFitHits:    s.FirstFitHits,
		BestFitHits:     s.BestFitHits,
		SplitCount:      s.SplitCount,
		BumpCount:       s.BumpCount,
		CoalesceForward: s.CoalesceForward,
	}
	for _, b := range a.Buckets() {
		out.FreeBlocks += b.Count
		out.FreeBytes += b.Bytes
	}
	return out
}

// Buckets reports the occupancy of every free list, overflow class last.
// Intended for debugging; the walk is O(free blocks).
func (a *BlockAllocator) Buckets() []BucketInfo {
	if a.mem == nil {
		return nil
	}
	out := make([]BucketInfo, len(a.freeLists))
	for sc := range a.freeLists {
		info := BucketInfo{Class: sc, Count: a.freeLists[sc].count}
		info.UpperBound, _ = a.profile.UpperBound(sc)
		for cur := a.freeLists[sc].head; cur >= 0; {
			h := a.header(cur)
			size := h.Size()
			info.Bytes += size
			info.Largest = max(info.Largest, size)
			cur = h.Next()
		}
		out[sc] = info
	}
	return out
}
