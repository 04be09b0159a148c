// Package pascal prints Pascal's triangle modulo 7 using a single arena
// sequence updated in place, one row at a time.
//
// Row i is derived from row i-1 right to left, cell[j] = cell[j] + cell[j-1]
// (mod 7), so every cell is read before it is overwritten. Marking the cells
// that are non-zero draws a Sierpinski-like pattern.
package pascal

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
)

// ErrBadInput indicates a negative row count.
var ErrBadInput = errors.New("pascal: row count must be >= 0")

const (
	// Modulus is the prime the coefficients are reduced by.
	Modulus = 7

	DefaultRows   = 42
	DefaultFilled = '*'
	DefaultEmpty  = '.'
)

// Mod7 returns x mod 7 in [0, 7), also for negative x.
func Mod7(x int32) int32 {
	r := x - Modulus*(x/Modulus)
	if r < 0 {
		r += Modulus
	}
	return r
}

// Options controls the rendered markers.
type Options struct {
	Filled byte // marker for coefficients not divisible by 7
	Empty  byte // marker for coefficients divisible by 7
}

// DefaultOptions returns '*' for filled and '.' for empty cells.
func DefaultOptions() Options {
	return Options{Filled: DefaultFilled, Empty: DefaultEmpty}
}

// Engine computes triangle rows in an arena.
type Engine struct {
	a    *arena.Arena
	al   alloc.Allocator
	opts Options
}

// New returns an Engine allocating from al.
func New(a *arena.Arena, al alloc.Allocator, opts Options) *Engine {
	return &Engine{a: a, al: al, opts: opts}
}

// Run writes rows 0..n-1, one line per row, row i holding i+1 markers.
func (e *Engine) Run(w io.Writer, n int) error {
	bw := bufio.NewWriter(w)
	err := e.compute(n, func(i int, row *Seq) error {
		for j := 0; j <= i; j++ {
			v, err := row.Get(j)
			if err != nil {
				return err
			}
			mark := e.opts.Empty
			if Mod7(v) != 0 {
				mark = e.opts.Filled
			}
			bw.WriteByte(mark)
		}
		return bw.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Rows returns the residues of rows 0..n-1.
func (e *Engine) Rows(n int) ([][]int32, error) {
	rows := make([][]int32, 0, max(n, 0))
	err := e.compute(n, func(i int, row *Seq) error {
		vs, err := row.Values()
		if err != nil {
			return err
		}
		rows = append(rows, vs[:i+1])
		return nil
	})
	return rows, err
}

func (e *Engine) compute(n int, emit func(i int, row *Seq) error) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrBadInput, n)
	}
	row, err := NewSeq(e.a, e.al, n+1)
	if err != nil {
		return err
	}
	for i := range n {
		if err := row.Set(i, 0); err != nil {
			return err
		}
		if err := computeRow(row, i); err != nil {
			return err
		}
		if err := emit(i, row); err != nil {
			return err
		}
	}
	return nil
}

// computeRow turns row i-1 (cells 0..i-1, cell i zeroed) into row i.
func computeRow(r *Seq, i int) error {
	for j := i; j > 0; j-- {
		cur, err := r.Get(j)
		if err != nil {
			return err
		}
		prev, err := r.Get(j - 1)
		if err != nil {
			return err
		}
		if err := r.Set(j, Mod7(cur+prev)); err != nil {
			return err
		}
	}
	return r.Set(0, 1)
}
