package alloc

import "github.com/joshuapare/arenakit/internal/buf"

// getBlock looks for a reusable block of at least need bytes, returning its
// header offset or -1 when the caller has to bump.
func (a *BlockAllocator) getBlock(need int) int {
	sc := a.getSizeClass(need)

	if a.profile.Mode == ModeFast {
		return a.headFit(sc, need)
	}

	// The higher the class, the wider the spread of block sizes in it.
	// Low classes take the first block that fits; high classes pay for a
	// full scan to keep waste down.
	var b int
	if sc <= a.profile.FirstFitMaxClass {
		b = a.firstFit(sc, need)
	} else {
		b = a.bestFit(sc, need)
	}
	if b >= 0 {
		return b
	}

	return a.splitFromLarger(need)
}

// headFit pops the head of class sc if it is large enough. Only heads are
// ever removed in the fast profile.
func (a *BlockAllocator) headFit(sc, need int) int {
	head := a.freeLists[sc].head
	if head < 0 || a.header(head).Size() < need {
		return -1
	}
	a.stats.HeadHits++
	return a.popHead(sc)
}

// firstFit removes and returns the first block in class sc that fits.
func (a *BlockAllocator) firstFit(sc, need int) int {
	prev := -1
	for cur := a.freeLists[sc].head; cur >= 0; {
		h := a.header(cur)
		if h.Size() >= need {
			a.unlink(sc, prev, cur)
			a.stats.FirstFitHits++
			return cur
		}
		prev, cur = cur, h.Next()
	}
	return -1
}

// bestFit removes and returns the smallest block in class sc that fits,
// stopping early on an exact match.
func (a *BlockAllocator) bestFit(sc, need int) int {
	best, bestPrev, bestSize := -1, -1, 0

	prev := -1
	for cur := a.freeLists[sc].head; cur >= 0; {
		h := a.header(cur)
		size := h.Size()
		if size >= need && (best < 0 || size < bestSize) {
			best, bestPrev, bestSize = cur, prev, size
			if size == need {
				break
			}
		}
		prev, cur = cur, h.Next()
	}

	if best < 0 {
		return -1
	}
	a.unlink(sc, bestPrev, best)
	a.stats.BestFitHits++
	return best
}

// splitFromLarger walks the classes strictly above the class of 2*need and
// splits the head of the first non-empty one that has room.
func (a *BlockAllocator) splitFromLarger(need int) int {
	doubled, ok := buf.MulOverflowSafe(need, 2)
	if !ok {
		return -1
	}
	for sc := a.getSizeClass(doubled) + 1; sc < len(a.freeLists); sc++ {
		if a.freeLists[sc].head < 0 {
			continue
		}
		if b := a.split(sc, need); b >= 0 {
			return b
		}
	}
	return -1
}
