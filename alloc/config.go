package alloc

import (
	"log/slog"
	"os"
)

// DefaultCapacity is the arena size used when Config.Capacity is zero (16 MiB).
const DefaultCapacity = 16 << 20

// Runtime debug flag for allocation logging - controlled by ARENAKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENAKIT_LOG_ALLOC") != ""

// Config configures a BlockAllocator.
type Config struct {
	// Capacity is the arena size in bytes. Zero selects DefaultCapacity.
	Capacity int

	// Profile selects the size-class table and search strategy.
	// nil selects ProfilePrecise.
	Profile *Profile

	// Logger receives lifecycle events and, at debug level, split and
	// coalesce decisions. nil discards output unless ARENAKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultConfig is a 16 MiB arena with the precise profile.
var DefaultConfig = Config{
	Capacity: DefaultCapacity,
	Profile:  &ProfilePrecise,
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}
