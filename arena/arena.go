package arena

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
	"github.com/joshuapare/heapkit/internal/region"
)

// Ref names a block by the absolute offset of its header.
type Ref uint32

// Nil is the nil reference. It falls inside the header block.
const Nil Ref = 0

// IsNil reports whether r is the nil reference.
func (r Ref) IsNil() bool { return r == Nil }

// Arena is append-only block memory.
type Arena struct {
	r       region.Region
	limit   int
	backing Backing
}

// New creates an empty arena with an initialized header block.
func New(opts ...Option) (*Arena, error) {
	cfg := config{backing: BackingHeap, initial: DefaultInitialSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.limit > format.MaxArenaSize {
		return nil, fmt.Errorf("arena: limit %d exceeds maximum %d", cfg.limit, format.MaxArenaSize)
	}
	if cfg.limit != 0 && cfg.limit < format.HeaderSize {
		return nil, fmt.Errorf("arena: limit %d smaller than header (%d): %w",
			cfg.limit, format.HeaderSize, ErrExhausted)
	}

	var (
		r   region.Region
		err error
	)
	switch cfg.backing {
	case BackingHeap:
		hint := cfg.initial
		if cfg.limit != 0 && cfg.limit < hint {
			hint = cfg.limit
		}
		r = region.NewHeap(hint)
	case BackingMmap:
		reserve := DefaultReserve
		if cfg.limit != 0 {
			reserve = cfg.limit
		}
		r, err = region.Map(reserve)
		if err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
	default:
		return nil, fmt.Errorf("arena: unknown backing %q", cfg.backing)
	}

	if err := r.Grow(format.HeaderSize); err != nil {
		r.Close()
		return nil, fmt.Errorf("arena: header: %w", err)
	}
	data := r.Bytes()
	copy(data[format.SignatureOffset:], format.HeapSignature)
	format.PutU32(data, format.DataSizeOffset, 0)
	format.PutU32(data, format.HighWaterOffset, format.HeaderSize)
	format.PutU32(data, format.BlockCountOffset, 0)

	logger.Debug("arena created", "backing", string(cfg.backing), "limit", cfg.limit)
	return &Arena{r: r, limit: cfg.limit, backing: cfg.backing}, nil
}

// Bytes returns the backed arena memory, header included.
func (a *Arena) Bytes() []byte { return a.r.Bytes() }

// Size returns the number of backed bytes, header included.
func (a *Arena) Size() int { return len(a.r.Bytes()) }

// Limit returns the byte cap, or 0 when the arena is uncapped.
func (a *Arena) Limit() int { return a.limit }

// Backing reports which region kind backs the arena.
func (a *Arena) Backing() Backing { return a.backing }

// MaxSize returns the effective cap: the limit, or format.MaxArenaSize.
func (a *Arena) MaxSize() int {
	if a.limit != 0 {
		return a.limit
	}
	return format.MaxArenaSize
}

// DataSize returns the backed bytes past the header, as recorded in the header.
func (a *Arena) DataSize() uint32 {
	return format.ReadU32(a.Bytes(), format.DataSizeOffset)
}

// HighWater returns the absolute offset at which the next block will start.
func (a *Arena) HighWater() int32 {
	return format.ReadI32(a.Bytes(), format.HighWaterOffset)
}

// BlockCount returns the number of blocks handed out so far.
func (a *Arena) BlockCount() uint32 {
	return format.ReadU32(a.Bytes(), format.BlockCountOffset)
}

// Append extends the backed memory by n zero bytes and records the new data
// size in the header. Growth past the limit fails with ErrExhausted.
func (a *Arena) Append(n int) error {
	if n <= 0 {
		return fmt.Errorf("arena: append %d bytes: %w", n, ErrGrowFail)
	}
	size := a.Size()
	if n > a.MaxSize()-size {
		return fmt.Errorf("arena: append %d bytes at size %d (max %d): %w",
			n, size, a.MaxSize(), ErrExhausted)
	}
	if err := a.r.Grow(n); err != nil {
		if errors.Is(err, region.ErrReserveExceeded) {
			return fmt.Errorf("arena: %w: %w", ErrExhausted, err)
		}
		return fmt.Errorf("%w: %w", ErrGrowFail, err)
	}
	data := a.Bytes()
	cur := format.ReadU32(data, format.DataSizeOffset)
	format.PutU32(data, format.DataSizeOffset, cur+uint32(n))
	logger.Debug("arena grew", "bytes", n, "size", len(data))
	return nil
}

// Commit records a block ending at end: the high-water mark moves to end and
// the block count increases by one. Only allocators call this.
func (a *Arena) Commit(end int32) error {
	hw := a.HighWater()
	if end <= hw || int(end) > a.Size() {
		return fmt.Errorf("arena: commit end %d (high-water %d, size %d): %w",
			end, hw, a.Size(), ErrInvariant)
	}
	data := a.Bytes()
	format.PutI32(data, format.HighWaterOffset, end)
	format.PutU32(data, format.BlockCountOffset, format.ReadU32(data, format.BlockCountOffset)+1)
	return nil
}

// Payload resolves ref to the payload of its block.
func (a *Arena) Payload(ref Ref) ([]byte, error) {
	if ref.IsNil() {
		return nil, ErrNilRef
	}
	off := int(ref)
	hw := int(a.HighWater())
	if off < format.HeaderSize || off+format.CellHeaderSize > hw {
		return nil, fmt.Errorf("%w: 0x%X outside blocks [0x%X, 0x%X)", ErrBadRef, off, format.HeaderSize, hw)
	}
	if (off-format.HeaderSize)%format.CellAlignment != 0 {
		return nil, fmt.Errorf("%w: 0x%X not block aligned", ErrBadRef, off)
	}
	data := a.Bytes()
	raw := format.ReadI32(data, off)
	if raw >= 0 {
		return nil, fmt.Errorf("%w: 0x%X: %w", ErrBadRef, off, format.ErrFreeCell)
	}
	size := int(-raw)
	if size < format.CellHeaderSize || off+size > hw {
		return nil, fmt.Errorf("%w: 0x%X declares size %d", ErrBadRef, off, size)
	}
	p, ok := buf.Slice(data, off+format.CellHeaderSize, size-format.CellHeaderSize)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%X payload beyond backed memory", ErrBadRef, off)
	}
	return p, nil
}

// Node resolves ref and checks that its payload holds at least size bytes.
func (a *Arena) Node(ref Ref, size int) ([]byte, error) {
	p, err := a.Payload(ref)
	if err != nil {
		return nil, err
	}
	if len(p) < size {
		return nil, fmt.Errorf("%w: 0x%X payload %d bytes, need %d", ErrBadRef, uint32(ref), len(p), size)
	}
	return p, nil
}

// Close releases the backing region. The arena must not be used afterwards.
func (a *Arena) Close() error {
	if a == nil || a.r == nil {
		return nil
	}
	return a.r.Close()
}
