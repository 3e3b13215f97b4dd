package alloc

import (
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintStats writes allocator statistics and non-empty buckets to w.
func (a *BlockAllocator) PrintStats(w io.Writer) {
	s := a.Stats()
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "=== ARENA STATISTICS (%s) ===\n", s.Profile)
	p.Fprintf(w, "Capacity:           %d bytes\n", s.Capacity)
	p.Fprintf(w, "Cursor:             %d bytes (%.1f%%)\n", s.Cursor, percent(s.Cursor, s.Capacity))
	p.Fprintf(w, "Alloc calls:        %d\n", s.AllocCalls)
	p.Fprintf(w, "Free calls:         %d\n", s.FreeCalls)
	p.Fprintf(w, "Bytes requested:    %d\n", s.BytesRequested)
	p.Fprintf(w, "Reuse:              head %d, first-fit %d, best-fit %d\n",
		s.HeadHits, s.FirstFitHits, s.BestFitHits)
	p.Fprintf(w, "Splits:             %d\n", s.SplitCount)
	p.Fprintf(w, "Bumps:              %d\n", s.BumpCount)
	p.Fprintf(w, "Forward coalesces:  %d\n", s.CoalesceForward)
	p.Fprintf(w, "Free:               %d blocks, %d bytes\n", s.FreeBlocks, s.FreeBytes)

	a.DumpBuckets(w)
}

// DumpBuckets writes one line per non-empty free list.
func (a *BlockAllocator) DumpBuckets(w io.Writer) {
	p := message.NewPrinter(language.English)
	for _, b := range a.Buckets() {
		if b.Count == 0 {
			continue
		}
		bound := "inf"
		if b.UpperBound > 0 {
			bound = strconv.Itoa(b.UpperBound)
		}
		p.Fprintf(w, "  SC[%d] <=%s: %d blocks, %d bytes, largest %d\n",
			b.Class, bound, b.Count, b.Bytes, b.Largest)
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
