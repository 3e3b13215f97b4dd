package format

// Header is a view over the HeaderSize bytes of one block header.
type Header []byte

// HeaderAt returns the header stored at off. The slice is capped so writes
// through it cannot reach the payload.
func HeaderAt(b []byte, off int) Header {
	return Header(b[off : off+HeaderSize : off+HeaderSize])
}

// Init writes every field of a fresh header. The free-list link is cleared.
func (h Header) Init(size, end int, free bool) {
	h.SetSize(size)
	h.SetEnd(end)
	h.SetNext(-1)
	h.SetFree(free)
}

// Size returns the payload size.
func (h Header) Size() int { return int(ReadU64(h, SizeFieldOffset)) }

// SetSize stores the payload size.
func (h Header) SetSize(n int) { PutU64(h, SizeFieldOffset, uint64(n)) }

// End returns the arena offset one past the payload.
func (h Header) End() int { return int(ReadU64(h, EndFieldOffset)) }

// SetEnd stores the end offset.
func (h Header) SetEnd(n int) { PutU64(h, EndFieldOffset, uint64(n)) }

// Next returns the header offset of the next free-list entry, or -1.
func (h Header) Next() int {
	v := ReadU64(h, NextFieldOffset)
	if v == NilLink {
		return -1
	}
	return int(v)
}

// SetNext stores the free-list link; a negative value clears it.
func (h Header) SetNext(off int) {
	if off < 0 {
		PutU64(h, NextFieldOffset, NilLink)
		return
	}
	PutU64(h, NextFieldOffset, uint64(off))
}

// Free reports whether the block is on a free list.
func (h Header) Free() bool { return ReadU64(h, FlagsFieldOffset)&FlagFree != 0 }

// SetFree toggles the free flag.
func (h Header) SetFree(free bool) {
	flags := ReadU64(h, FlagsFieldOffset)
	if free {
		flags |= FlagFree
	} else {
		flags &^= FlagFree
	}
	PutU64(h, FlagsFieldOffset, flags)
}
