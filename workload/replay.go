package workload

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/joshuapare/arenakit/alloc"
	"golang.org/x/sync/errgroup"
)

// ReplayOptions controls a replay.
type ReplayOptions struct {
	// Check fills every payload with an id-derived pattern and verifies it
	// before the block is freed.
	Check bool

	// VerifyEvery runs the allocator's structural check after every n
	// operations when the allocator supports it. Zero disables it.
	VerifyEvery int
}

// Result reports one replay.
type Result struct {
	Ops      int
	Allocs   int
	Frees    int
	Bytes    int64
	PeakLive int
	Elapsed  time.Duration

	// Live holds the ids still allocated when the trace ended.
	Live *roaring.Bitmap

	// Stats is the allocator snapshot after the replay, if it exposes one.
	Stats *alloc.Stats
}

type statser interface {
	Stats() alloc.Stats
}

type verifier interface {
	Verify() error
}

type liveBlock struct {
	ref  alloc.Ref
	size int
}

// Replay runs t against a. Allocation failures, frees of unknown ids and
// reuse of live ids stop the replay with an error; the partial Result is
// still returned.
func Replay(ctx context.Context, a alloc.Allocator, t *Trace, opts ReplayOptions) (Result, error) {
	res := Result{Live: roaring.New()}
	blocks := make(map[uint32]liveBlock)
	v, _ := a.(verifier)

	start := time.Now()
	err := func() error {
		for i, op := range t.Ops {
			if i&1023 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			res.Ops++

			switch op.Kind {
			case OpAlloc:
				if !res.Live.CheckedAdd(op.ID) {
					return fmt.Errorf("%w: op %d: id %d", ErrDuplicateID, i, op.ID)
				}
				ref, data, err := a.Alloc(op.Size)
				if err != nil {
					res.Live.Remove(op.ID)
					return fmt.Errorf("op %d: alloc %d bytes for id %d: %w", i, op.Size, op.ID, err)
				}
				if opts.Check {
					stamp(data, op.ID)
				}
				blocks[op.ID] = liveBlock{ref: ref, size: op.Size}
				res.Allocs++
				res.Bytes += int64(op.Size)
				res.PeakLive = max(res.PeakLive, len(blocks))
			case OpFree:
				if !res.Live.CheckedRemove(op.ID) {
					return fmt.Errorf("%w: op %d: id %d", ErrUnknownID, i, op.ID)
				}
				blk := blocks[op.ID]
				delete(blocks, op.ID)
				if opts.Check {
					if off := checkStamp(a.Bytes(blk.ref)[:blk.size], op.ID); off >= 0 {
						return fmt.Errorf("%w: op %d: id %d at byte %d", ErrCorrupted, i, op.ID, off)
					}
				}
				a.Free(blk.ref)
				res.Frees++
			}

			if v != nil && opts.VerifyEvery > 0 && res.Ops%opts.VerifyEvery == 0 {
				if err := v.Verify(); err != nil {
					return fmt.Errorf("op %d: %w", i, err)
				}
			}
		}
		return nil
	}()
	res.Elapsed = time.Since(start)

	if s, ok := a.(statser); ok {
		st := s.Stats()
		res.Stats = &st
	}
	return res, err
}

// stamp writes a pattern derived from id.
func stamp(data []byte, id uint32) {
	seed := byte(id) ^ byte(id>>8) ^ byte(id>>16) ^ byte(id>>24)
	for i := range data {
		data[i] = seed + byte(i)
	}
}

// checkStamp returns the first byte that does not match stamp, or -1.
func checkStamp(data []byte, id uint32) int {
	seed := byte(id) ^ byte(id>>8) ^ byte(id>>16) ^ byte(id>>24)
	for i := range data {
		if data[i] != seed+byte(i) {
			return i
		}
	}
	return -1
}

// RunParallel replays t on workers independent allocators built from cfg,
// one per goroutine. Allocators are never shared. The first failure cancels
// the remaining workers.
func RunParallel(ctx context.Context, workers int, cfg alloc.Config, t *Trace, opts ReplayOptions) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			a, err := alloc.New(cfg)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			defer a.Close()

			res, err := Replay(ctx, a, t, opts)
			results[w] = res
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			return nil
		})
	}
	return results, g.Wait()
}
