package alloc

// coalesce merges block b with its physical successor when that successor is
// free. Only the next block is considered: there is no link back to the
// previous block, so a free predecessor stays separate until it is itself
// freed again after b.
func (a *BlockAllocator) coalesce(b int) {
	h := a.header(b)
	next := h.End()
	if next == a.cursor {
		// Nothing has been carved after b yet.
		return
	}

	nh := a.header(next)
	if !nh.Free() {
		return
	}

	a.removeFree(a.getSizeClass(nh.Size()), next)
	nh.SetFree(false)

	h.SetSize(h.Size() + HeaderSize + nh.Size())
	h.SetEnd(nh.End())

	a.stats.CoalesceForward++
	if a.debug {
		a.log.Debug("coalesce",
			"block", b,
			"absorbed", next,
			"size", h.Size(),
		)
	}
}
