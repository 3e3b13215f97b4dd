package alloc

// split carves a need-byte block off the tail of the head block of class sc.
//
// The donor keeps its start offset, so a block physically before it still
// finds it through its own end offset. The donor is refused when the rest
// would not hold a header and a minimum payload. On success the shrunk donor
// moves to the class for its new size and the carved block is returned,
// already off every list.
func (a *BlockAllocator) split(sc, need int) int {
	donor := a.freeLists[sc].head
	dh := a.header(donor)
	if dh.Size() < MinBlockSize+HeaderSize+need {
		return -1
	}

	carve := HeaderSize + need
	end := dh.End()
	b := end - carve
	a.header(b).Init(need, end, false)

	a.popHead(sc)
	dh.SetSize(dh.Size() - carve)
	dh.SetEnd(b)
	a.pushFree(donor)

	a.stats.SplitCount++
	if a.debug {
		a.log.Debug("split",
			"donor", donor,
			"remaining", dh.Size(),
			"carved", b,
			"need", need,
		)
	}
	return b
}
