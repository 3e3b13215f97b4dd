package alloc

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// liveBlock tracks one outstanding allocation in the random tests.
type liveBlock struct {
	ref  Ref
	size int
	seed byte
}

// TestRandomOperationsPreserveInvariants runs seeded random alloc/free
// sequences and checks the arena after every few steps:
//   - the physical chain is contiguous and matches the free lists (Verify)
//   - live payloads never overlap
//   - live payload contents survive unrelated allocs and frees
func TestRandomOperationsPreserveInvariants(t *testing.T) {
	seeds := []int64{1, 7, 42, 1337, 20240601}
	for _, p := range testProfiles() {
		for _, seed := range seeds {
			t.Run(fmt.Sprintf("%s/seed=%d", p.Name, seed), func(t *testing.T) {
				runRandomOps(t, p, seed, 3000)
			})
		}
	}
}

func runRandomOps(t *testing.T, p Profile, seed int64, ops int) {
	t.Helper()
	a := newTestAllocator(t, 16<<20, p)
	rng := rand.New(rand.NewSource(seed))

	var live []liveBlock
	for step := range ops {
		// Bias toward allocation until a working set builds up.
		if len(live) == 0 || rng.Intn(100) < 55 {
			size := randomSize(rng)
			ref, data, err := a.Alloc(size)
			require.NoError(t, err, "step %d: alloc %d", step, size)
			require.Len(t, data, size)
			s := byte(rng.Intn(256))
			fill(data, s)
			live = append(live, liveBlock{ref: ref, size: size, seed: s})
		} else {
			i := rng.Intn(len(live))
			blk := live[i]
			data := a.Bytes(blk.ref)
			requirePattern(t, data[:blk.size], blk.seed)
			a.Free(blk.ref)
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		if step%50 == 0 {
			require.NoError(t, a.Verify(), "step %d", step)
			spans := make([]span, len(live))
			for i, blk := range live {
				spans[i] = span{off: int(blk.ref), size: blk.size}
			}
			requireDisjoint(t, spans)
		}
	}

	for _, blk := range live {
		requirePattern(t, a.Bytes(blk.ref)[:blk.size], blk.seed)
		a.Free(blk.ref)
	}
	require.NoError(t, a.Verify())

	s := a.Stats()
	require.Equal(t, s.AllocCalls, s.FreeCalls)
	require.LessOrEqual(t, s.Cursor, s.Capacity)
}

// randomSize mixes small, mid and overflow-class sizes.
func randomSize(rng *rand.Rand) int {
	switch r := rng.Intn(100); {
	case r < 60:
		return 1 + rng.Intn(128)
	case r < 90:
		return 129 + rng.Intn(896)
	default:
		return 1025 + rng.Intn(4096)
	}
}

// TestRandomOperationsAreReproducible replays the same seed twice and
// compares every returned handle.
func TestRandomOperationsAreReproducible(t *testing.T) {
	record := func(p Profile) []Ref {
		a := newTestAllocator(t, 8<<20, p)
		rng := rand.New(rand.NewSource(99))
		var live, out []Ref
		for range 1000 {
			if len(live) > 0 && rng.Intn(2) == 0 {
				i := rng.Intn(len(live))
				a.Free(live[i])
				live = append(live[:i], live[i+1:]...)
				continue
			}
			ref, _, err := a.Alloc(randomSize(rng))
			require.NoError(t, err)
			live = append(live, ref)
			out = append(out, ref)
		}
		return out
	}

	for _, p := range testProfiles() {
		t.Run(p.Name, func(t *testing.T) {
			require.Equal(t, record(p), record(p))
		})
	}
}

// TestEveryAllocTakesExactlyOnePath checks that under churn each successful
// Alloc is served by exactly one of reuse, split or bump, and that each
// profile only uses its own paths.
func TestEveryAllocTakesExactlyOnePath(t *testing.T) {
	for _, p := range testProfiles() {
		t.Run(p.Name, func(t *testing.T) {
			a := newTestAllocator(t, 16<<20, p)
			rng := rand.New(rand.NewSource(5))
			var live []Ref
			for range 4000 {
				if len(live) > 64 || (len(live) > 0 && rng.Intn(2) == 0) {
					i := rng.Intn(len(live))
					a.Free(live[i])
					live[i] = live[len(live)-1]
					live = live[:len(live)-1]
					continue
				}
				ref, _, err := a.Alloc(1 + rng.Intn(2000))
				require.NoError(t, err)
				live = append(live, ref)
			}
			require.NoError(t, a.Verify())

			s := a.Stats()
			served := s.HeadHits + s.FirstFitHits + s.BestFitHits + s.SplitCount + s.BumpCount
			require.Equal(t, s.AllocCalls, served)

			if p.Mode == ModeFast {
				require.Zero(t, s.FirstFitHits+s.BestFitHits+s.SplitCount+s.CoalesceForward)
				require.Positive(t, s.HeadHits)
			} else {
				require.Zero(t, s.HeadHits)
				require.Positive(t, s.FirstFitHits+s.BestFitHits)
			}
		})
	}
}
