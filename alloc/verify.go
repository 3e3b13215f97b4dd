package alloc

import "fmt"

// BlockInfo describes one block found by Walk.
type BlockInfo struct {
	Offset int // Header offset
	Size   int
	End    int
	Free   bool
}

// Walk visits every block in physical order, from offset 0 to the cursor.
// It stops early when fn returns false or the chain is malformed.
func (a *BlockAllocator) Walk(fn func(BlockInfo) bool) {
	for off := 0; off < a.cursor; {
		if off+HeaderSize > a.cursor {
			return
		}
		h := a.header(off)
		info := BlockInfo{Offset: off, Size: h.Size(), End: h.End(), Free: h.Free()}
		if !fn(info) || info.End <= off {
			return
		}
		off = info.End
	}
}

// Verify checks the structural invariants of the arena:
//   - the physical chain is contiguous and ends exactly at the cursor
//   - every block's end equals its offset plus header and payload
//   - every free-list entry is a free block filed under its own class
//   - the free flag is set exactly for blocks on a free list
//
// Verify is O(arena blocks + free blocks) and intended for tests and tools.
func (a *BlockAllocator) Verify() error {
	if a.mem == nil {
		return ErrClosed
	}

	physical := make(map[int]BlockInfo)
	var walkErr error
	last := 0
	a.Walk(func(b BlockInfo) bool {
		if b.End != b.Offset+HeaderSize+b.Size {
			walkErr = fmt.Errorf("block %d: end %d != offset+header+size %d",
				b.Offset, b.End, b.Offset+HeaderSize+b.Size)
			return false
		}
		if b.End > a.cursor {
			walkErr = fmt.Errorf("block %d: end %d past cursor %d", b.Offset, b.End, a.cursor)
			return false
		}
		physical[b.Offset] = b
		last = b.End
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	if last != a.cursor {
		return fmt.Errorf("physical chain ends at %d, cursor at %d", last, a.cursor)
	}

	listed := make(map[int]int)
	for sc := range a.freeLists {
		n := 0
		for cur := a.freeLists[sc].head; cur >= 0; cur = a.header(cur).Next() {
			b, ok := physical[cur]
			if !ok {
				return fmt.Errorf("class %d: entry %d is not a block boundary", sc, cur)
			}
			if prev, dup := listed[cur]; dup {
				return fmt.Errorf("block %d listed in classes %d and %d", cur, prev, sc)
			}
			if want := a.getSizeClass(b.Size); want != sc {
				return fmt.Errorf("block %d of size %d filed in class %d, want %d", cur, b.Size, sc, want)
			}
			listed[cur] = sc
			n++
		}
		if n != a.freeLists[sc].count {
			return fmt.Errorf("class %d: count %d, walked %d", sc, a.freeLists[sc].count, n)
		}
	}

	for off, b := range physical {
		_, onList := listed[off]
		if b.Free != onList {
			return fmt.Errorf("block %d: free flag %v but listed %v", off, b.Free, onList)
		}
	}
	return nil
}
