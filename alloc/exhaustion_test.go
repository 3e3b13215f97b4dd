package alloc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExhaustionReturnsErrorAndKeepsState(t *testing.T) {
	for _, p := range testProfiles() {
		t.Run(p.Name, func(t *testing.T) {
			a := newTestAllocator(t, 4096, p)

			for range 3 {
				_, _, err := a.Alloc(1000)
				require.NoError(t, err)
			}
			cursor := a.Cursor()
			require.Equal(t, 3*(HeaderSize+1000), cursor)

			_, _, err := a.Alloc(1000)
			require.ErrorIs(t, err, ErrArenaExhausted)
			require.Equal(t, cursor, a.Cursor(), "failed bump must not move the cursor")

			// The remaining space is still usable.
			_, _, err = a.Alloc(4096 - cursor - HeaderSize)
			require.NoError(t, err)
			require.Equal(t, 4096, a.Cursor())
			require.NoError(t, a.Verify())
		})
	}
}

// TestCumulativeAllocationsExhaustDeterministically allocates fixed-size
// blocks until the arena runs out; the failing call is always the same one.
func TestCumulativeAllocationsExhaustDeterministically(t *testing.T) {
	const (
		capacity = 1 << 14
		size     = 64
	)
	for _, p := range testProfiles() {
		t.Run(p.Name, func(t *testing.T) {
			a := newTestAllocator(t, capacity, p)
			n := 0
			for {
				if _, _, err := a.Alloc(size); err != nil {
					require.ErrorIs(t, err, ErrArenaExhausted)
					break
				}
				n++
			}
			require.Equal(t, capacity/(HeaderSize+size), n)
		})
	}
}

func TestMustAllocPanicsOnExhaustion(t *testing.T) {
	a := newTestAllocator(t, 1024, ProfilePrecise)

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %v", r)
		require.True(t, errors.Is(err, ErrArenaExhausted))
	}()
	a.MustAlloc(2048)
	t.Fatal("MustAlloc should have panicked")
}

func TestHugeRequestDoesNotOverflow(t *testing.T) {
	a := newTestAllocator(t, 1<<12, ProfilePrecise)

	_, _, err := a.Alloc(math.MaxInt)
	require.ErrorIs(t, err, ErrArenaExhausted)
	_, _, err = a.Alloc(math.MaxInt / 2)
	require.ErrorIs(t, err, ErrArenaExhausted)
	require.Zero(t, a.Cursor())
}

func TestFreedSpaceAvoidsExhaustion(t *testing.T) {
	a := newTestAllocator(t, 4096, ProfilePrecise)

	for range 1000 {
		ref, _, err := a.Alloc(1500)
		require.NoError(t, err)
		a.Free(ref)
	}
	require.Equal(t, HeaderSize+1500, a.Cursor())
}
