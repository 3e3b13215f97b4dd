package alloc

// freeList is the head of one size class. Blocks are linked through the next
// field of their headers, in no particular order.
type freeList struct {
	head  int // Header offset of the first free block, -1 when empty
	count int
}

// pushFree marks b free and links it at the head of the class for its size.
func (a *BlockAllocator) pushFree(b int) {
	h := a.header(b)
	list := &a.freeLists[a.getSizeClass(h.Size())]

	h.SetNext(list.head)
	h.SetFree(true)
	list.head = b
	list.count++
}

// popHead unlinks and returns the first block of class sc, or -1.
// The free flag is left for the caller to clear.
func (a *BlockAllocator) popHead(sc int) int {
	list := &a.freeLists[sc]
	b := list.head
	if b < 0 {
		return -1
	}
	h := a.header(b)
	list.head = h.Next()
	h.SetNext(-1)
	list.count--
	return b
}

// unlink removes b from class sc given its predecessor in the list
// (-1 when b is the head).
func (a *BlockAllocator) unlink(sc, prev, b int) {
	list := &a.freeLists[sc]
	h := a.header(b)
	if prev < 0 {
		list.head = h.Next()
	} else {
		a.header(prev).SetNext(h.Next())
	}
	h.SetNext(-1)
	list.count--
}

// removeFree unlinks block b from class sc. O(bucket length).
// Returns false when b is not on that list.
func (a *BlockAllocator) removeFree(sc, b int) bool {
	prev := -1
	for cur := a.freeLists[sc].head; cur >= 0; cur = a.header(cur).Next() {
		if cur == b {
			a.unlink(sc, prev, cur)
			return true
		}
		prev = cur
	}
	return false
}
