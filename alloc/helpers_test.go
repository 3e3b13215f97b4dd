package alloc

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// testProfiles returns both predefined profiles for table-driven tests.
func testProfiles() []Profile {
	return []Profile{ProfileFast, ProfilePrecise}
}

// newTestAllocator maps a fresh arena that is released when the test ends.
func newTestAllocator(t testing.TB, capacity int, profile Profile) *BlockAllocator {
	t.Helper()
	a, err := New(Config{Capacity: capacity, Profile: &profile})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, a.Close())
	})
	return a
}

// span is a live payload range [off, off+size).
type span struct {
	off  int
	size int
}

// requireDisjoint fails if any two spans overlap.
func requireDisjoint(t testing.TB, spans []span) {
	t.Helper()
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].off < sorted[j].off })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		require.LessOrEqual(t, prev.off+prev.size, cur.off,
			"payload [%d,%d) overlaps [%d,%d)", prev.off, prev.off+prev.size, cur.off, cur.off+cur.size)
	}
}

// fill writes a recognizable pattern derived from seed.
func fill(data []byte, seed byte) {
	for i := range data {
		data[i] = seed + byte(i)
	}
}

// requirePattern checks a pattern written by fill.
func requirePattern(t testing.TB, data []byte, seed byte) {
	t.Helper()
	for i := range data {
		if data[i] != seed+byte(i) {
			require.Failf(t, "payload corrupted", "byte %d: got 0x%02x want 0x%02x", i, data[i], seed+byte(i))
		}
	}
}
