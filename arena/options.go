package arena

import (
	"fmt"
	"strings"
)

// Backing selects the memory behind an arena.
type Backing string

const (
	// BackingHeap grows a Go slice. Unbounded unless a limit is set.
	BackingHeap Backing = "heap"

	// BackingMmap reserves anonymous memory up front (unix) and never moves it.
	BackingMmap Backing = "mmap"
)

const (
	// DefaultInitialSize is the heap region capacity hint.
	DefaultInitialSize = 64 << 10

	// DefaultReserve is the mmap reservation when no limit is set.
	DefaultReserve = 256 << 20
)

// ParseBacking maps a flag value to a Backing.
func ParseBacking(s string) (Backing, error) {
	switch Backing(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackingHeap:
		return BackingHeap, nil
	case BackingMmap:
		return BackingMmap, nil
	default:
		return "", fmt.Errorf("arena: unknown backing %q (want heap or mmap)", s)
	}
}

type config struct {
	limit   int
	backing Backing
	initial int
}

// Option configures an Arena.
type Option func(*config)

// WithLimit caps the arena at n bytes including the header block.
// Zero means no cap beyond format.MaxArenaSize.
func WithLimit(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.limit = n
		}
	}
}

// WithBacking selects the backing region.
func WithBacking(b Backing) Option {
	return func(c *config) {
		if b != "" {
			c.backing = b
		}
	}
}

// WithInitialSize sets the capacity hint for heap-backed arenas.
func WithInitialSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.initial = n
		}
	}
}
