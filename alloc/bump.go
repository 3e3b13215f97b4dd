package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/buf"
)

// bump carves a brand-new block of need payload bytes at the cursor.
//
// This is the only path that consumes fresh arena space and therefore the
// only one that can fail. On failure the cursor does not move.
func (a *BlockAllocator) bump(need int) (int, error) {
	total, ok := buf.AddOverflowSafe(HeaderSize, need)
	if !ok || !buf.FitsWithin(a.cursor, total, a.capacity) {
		return -1, fmt.Errorf("%w: block of %d bytes at offset %d, capacity %d",
			ErrArenaExhausted, HeaderSize+need, a.cursor, a.capacity)
	}

	b := a.cursor
	a.cursor += total
	a.header(b).Init(need, a.cursor, false)

	a.stats.BumpCount++
	return b, nil
}
