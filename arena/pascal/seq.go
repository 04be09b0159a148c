package pascal

import (
	"fmt"
	"math"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Seq is a fixed-length run of int32 cells stored in one arena block.
// Its length is set at construction and never changes.
type Seq struct {
	a   *arena.Arena
	ref arena.Ref
	n   int
}

// NewSeq allocates length zeroed cells.
func NewSeq(a *arena.Arena, al alloc.Allocator, length int) (*Seq, error) {
	if length < 0 {
		return nil, fmt.Errorf("pascal: negative sequence length %d", length)
	}
	size, ok := buf.MulOverflowSafe(length, format.SeqCellSize)
	if !ok || size > math.MaxInt32-format.SeqCellsOffset {
		return nil, fmt.Errorf("pascal: sequence of %d cells: %w", length, arena.ErrExhausted)
	}
	ref, p, err := al.Alloc(int32(format.SeqCellsOffset + size))
	if err != nil {
		return nil, fmt.Errorf("pascal: sequence of %d cells: %w", length, err)
	}
	format.PutI32(p, format.SeqLenOffset, int32(length))
	return &Seq{a: a, ref: ref, n: length}, nil
}

// Ref returns the block holding the sequence.
func (s *Seq) Ref() arena.Ref { return s.ref }

// Len returns the number of cells.
func (s *Seq) Len() int { return s.n }

// cell resolves the bytes of cell i.
func (s *Seq) cell(i int) ([]byte, error) {
	if i < 0 || i >= s.n {
		return nil, fmt.Errorf("pascal: index %d, length %d: %w", i, s.n, arena.ErrIndexOutOfRange)
	}
	p, err := s.a.Payload(s.ref)
	if err != nil {
		return nil, fmt.Errorf("pascal: sequence 0x%X: %w", uint32(s.ref), err)
	}
	if _, err := buf.CheckRunBounds(len(p), format.SeqCellsOffset, s.n, format.SeqCellSize); err != nil {
		return nil, fmt.Errorf("pascal: sequence 0x%X: %v: %w", uint32(s.ref), err, arena.ErrInvariant)
	}
	off := format.SeqCellsOffset + i*format.SeqCellSize
	return p[off : off+format.SeqCellSize], nil
}

// Get returns cell i.
func (s *Seq) Get(i int) (int32, error) {
	c, err := s.cell(i)
	if err != nil {
		return 0, err
	}
	return buf.I32LE(c), nil
}

// Set stores v in cell i.
func (s *Seq) Set(i int, v int32) error {
	c, err := s.cell(i)
	if err != nil {
		return err
	}
	buf.PutI32LE(c, v)
	return nil
}

// Values copies the cells out.
func (s *Seq) Values() ([]int32, error) {
	out := make([]int32, s.n)
	for i := range out {
		v, err := s.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
