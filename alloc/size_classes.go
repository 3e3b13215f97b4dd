package alloc

import (
	"fmt"
	"strings"
)

// Mode selects how much work the allocator does per call.
type Mode uint8

const (
	// ModeFast reuses only the head of the request's class; no split, no merge.
	ModeFast Mode = iota

	// ModePrecise searches classes first-fit/best-fit, splits and coalesces.
	ModePrecise
)

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModePrecise:
		return "precise"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Profile defines a size-class table and the search strategy over it.
type Profile struct {
	// Name for this profile (for reports and the CLI).
	Name string

	// Mode selects the fast or precise engine.
	Mode Mode

	// Bounds are the finite, strictly increasing class upper bounds.
	// One overflow class follows the last bound.
	Bounds []int

	// FirstFitMaxClass is the highest class searched first-fit; classes
	// above it are searched best-fit. Ignored in ModeFast.
	FirstFitMaxClass int
}

// Predefined profiles.
var (
	// ProfileFast: 8 coarse power-of-two classes, head reuse only.
	ProfileFast = Profile{
		Name:             "fast",
		Mode:             ModeFast,
		Bounds:           []int{16, 32, 64, 128, 256, 512, 1024},
		FirstFitMaxClass: 7,
	}

	// ProfilePrecise: 20 fine classes. Classes up to 192 bytes have a narrow
	// spread, so first-fit wastes little; wider classes above use best-fit.
	ProfilePrecise = Profile{
		Name:             "precise",
		Mode:             ModePrecise,
		Bounds:           []int{4, 8, 16, 32, 48, 64, 80, 96, 128, 160, 192, 256, 320, 384, 512, 640, 768, 896, 1024},
		FirstFitMaxClass: 10,
	}
)

// ProfileByName returns a copy of a predefined profile.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(name) {
	case ProfileFast.Name:
		return ProfileFast, nil
	case ProfilePrecise.Name, "":
		return ProfilePrecise, nil
	default:
		return Profile{}, fmt.Errorf("%w: unknown profile %q", ErrBadProfile, name)
	}
}

// NumClasses returns the number of classes including the overflow class.
func (p Profile) NumClasses() int {
	return len(p.Bounds) + 1
}

// Classify returns the class for a request of size bytes. Sizes below
// MinBlockSize are raised to it first.
func (p Profile) Classify(size int) int {
	t := sizeClassTable{boundaries: p.Bounds}
	return t.getSizeClass(max(size, MinBlockSize))
}

// UpperBound returns the inclusive upper bound of class cls, or false for the
// overflow class.
func (p Profile) UpperBound(cls int) (int, bool) {
	if cls < 0 || cls >= len(p.Bounds) {
		return 0, false
	}
	return p.Bounds[cls], true
}

// Validate checks that the profile can drive an allocator.
func (p Profile) Validate() error {
	if len(p.Bounds) == 0 {
		return fmt.Errorf("%w: %q has no bounds", ErrBadProfile, p.Name)
	}
	if p.Bounds[0] < MinBlockSize {
		return fmt.Errorf("%w: %q first bound %d below minimum block size %d",
			ErrBadProfile, p.Name, p.Bounds[0], MinBlockSize)
	}
	for i := 1; i < len(p.Bounds); i++ {
		if p.Bounds[i] <= p.Bounds[i-1] {
			return fmt.Errorf("%w: %q bounds not increasing at class %d (%d <= %d)",
				ErrBadProfile, p.Name, i, p.Bounds[i], p.Bounds[i-1])
		}
	}
	if p.Mode != ModeFast && p.Mode != ModePrecise {
		return fmt.Errorf("%w: %q has unknown mode %v", ErrBadProfile, p.Name, p.Mode)
	}
	if p.FirstFitMaxClass < 0 || p.FirstFitMaxClass >= p.NumClasses() {
		return fmt.Errorf("%w: %q first-fit threshold %d outside [0, %d)",
			ErrBadProfile, p.Name, p.FirstFitMaxClass, p.NumClasses())
	}
	return nil
}

// sizeClassTable holds the class boundaries of one allocator.
type sizeClassTable struct {
	boundaries []int // Upper bound for each finite size class
	numClasses int   // Including the overflow class
}

// newSizeClassTable copies the profile bounds so later edits to the profile
// cannot reshape a live allocator.
func newSizeClassTable(p Profile) *sizeClassTable {
	boundaries := make([]int, len(p.Bounds))
	copy(boundaries, p.Bounds)
	return &sizeClassTable{
		boundaries: boundaries,
		numClasses: len(boundaries) + 1,
	}
}

// getSizeClass returns the size class index for a given size.
// Returns len(boundaries) (the overflow class) for sizes above every bound.
func (t *sizeClassTable) getSizeClass(size int) int {
	lo, hi := 0, len(t.boundaries)-1

	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			// Check if this is the smallest boundary that fits
			if mid == 0 || size > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	return len(t.boundaries)
}
