package alloc

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/joshuapare/arenakit/internal/format"
	"github.com/joshuapare/arenakit/internal/mmfile"
)

// BlockAllocator carves one fixed-size anonymous mapping into blocks.
//   - Segregated singly linked free lists, one per size class
//   - Free-list links live in the block headers; handles are arena offsets
//   - A monotonic bump cursor provides fresh blocks when no free block fits.
type BlockAllocator struct {
	mem      []byte       // The mapped arena
	release  func() error // Unmaps mem; nil once closed
	capacity int

	// cursor is the first never-used byte of the arena. It only moves forward.
	cursor int

	profile   Profile
	sizeTable *sizeClassTable

	// Segregated free lists by size class
	// Number of lists determined by sizeTable.numClasses
	freeLists []freeList

	log   *slog.Logger
	debug bool // log.Enabled(debug), sampled once at construction

	// Statistics for testing and instrumentation
	stats allocatorStats
}

// New maps an arena of cfg.Capacity bytes and returns an empty allocator.
// A refused mapping is reported as ErrArenaMap.
func New(cfg Config) (*BlockAllocator, error) {
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < HeaderSize+MinBlockSize {
		return nil, fmt.Errorf("%w: capacity %d cannot hold a single block", ErrBadSize, capacity)
	}

	profile := ProfilePrecise
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger()

	mem, release, err := mmfile.Anonymous(capacity)
	if err != nil {
		logger.Error("arena mapping refused", "capacity", capacity, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrArenaMap, err)
	}

	sizeTable := newSizeClassTable(profile)
	profile.Bounds = sizeTable.boundaries
	a := &BlockAllocator{
		mem:       mem,
		release:   release,
		capacity:  capacity,
		profile:   profile,
		sizeTable: sizeTable,
		freeLists: make([]freeList, sizeTable.numClasses),
		log:       logger,
		debug:     logger.Enabled(context.Background(), slog.LevelDebug),
	}
	for i := range a.freeLists {
		a.freeLists[i].head = -1
	}

	logger.Info("arena mapped",
		"capacity", capacity,
		"profile", profile.Name,
		"classes", sizeTable.numClasses,
	)
	return a, nil
}

// MustNew is New for hosts that treat a refused mapping as fatal.
func MustNew(cfg Config) *BlockAllocator {
	a, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return a
}

// Close unmaps the arena. It is safe to call more than once.
func (a *BlockAllocator) Close() error {
	if a.release == nil {
		return nil
	}
	err := a.release()
	a.release = nil
	a.mem = nil
	a.log.Info("arena released",
		"capacity", a.capacity,
		"cursor", a.cursor,
		"allocs", a.stats.AllocCalls,
		"frees", a.stats.FreeCalls,
	)
	return err
}

// Alloc returns a block of at least size payload bytes. The returned slice has
// length and capacity size; the contents are whatever the block last held.
func (a *BlockAllocator) Alloc(size int) (Ref, []byte, error) {
	if size <= 0 {
		return 0, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	if a.mem == nil {
		return 0, nil, ErrClosed
	}
	a.stats.AllocCalls++

	need := max(size, MinBlockSize)
	b := a.getBlock(need)
	if b < 0 {
		var err error
		b, err = a.bump(need)
		if err != nil {
			a.log.Warn("arena exhausted",
				"need", need,
				"cursor", a.cursor,
				"capacity", a.capacity,
			)
			return 0, nil, err
		}
	}

	a.header(b).SetFree(false)
	a.stats.BytesRequested += int64(size)

	payload := b + HeaderSize
	return Ref(payload), a.mem[payload : payload+size : payload+size], nil
}

// MustAlloc is Alloc for hosts that treat exhaustion as fatal.
func (a *BlockAllocator) MustAlloc(size int) (Ref, []byte) {
	ref, data, err := a.Alloc(size)
	if err != nil {
		panic(err)
	}
	return ref, data
}

// Free returns a block to its size class. In the precise profile the block
// first absorbs its physical successor if that block is free.
//
// ref must come from Alloc on this allocator and must not have been freed
// since; nothing is checked.
func (a *BlockAllocator) Free(ref Ref) {
	a.stats.FreeCalls++

	b := int(ref) - HeaderSize
	if a.profile.Mode == ModePrecise {
		a.coalesce(b)
	}
	a.pushFree(b)
}

// Bytes returns the full payload of the live block at ref.
func (a *BlockAllocator) Bytes(ref Ref) []byte {
	h := a.header(int(ref) - HeaderSize)
	end := int(ref) + h.Size()
	return a.mem[ref:end:end]
}

// Profile returns a copy of the profile the allocator was built with.
func (a *BlockAllocator) Profile() Profile {
	p := a.profile
	p.Bounds = slices.Clone(p.Bounds)
	return p
}

// Capacity returns the arena size in bytes.
func (a *BlockAllocator) Capacity() int {
	return a.capacity
}

// Cursor returns the offset of the first never-used arena byte.
func (a *BlockAllocator) Cursor() int {
	return a.cursor
}

// header returns the header of the block starting at arena offset b.
func (a *BlockAllocator) header(b int) format.Header {
	return format.HeaderAt(a.mem, b)
}

// getSizeClass returns the free-list index for a given block size.
func (a *BlockAllocator) getSizeClass(size int) int {
	return a.sizeTable.getSizeClass(size)
}
