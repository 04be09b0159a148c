// Package region supplies the raw memory behind an arena. A Region only ever
// grows; bytes already handed out keep their offsets for the region's life.
package region

import (
	"errors"
	"fmt"
)

// ErrReserveExceeded indicates a fixed reservation cannot back the requested growth.
var ErrReserveExceeded = errors.New("region: reservation exceeded")

// Region is growable, zero-filled memory addressed by offset.
type Region interface {
	// Bytes returns the currently backed memory. The slice may be replaced
	// by Grow, so callers re-fetch it after growing.
	Bytes() []byte
	// Grow extends the backed memory by n zero bytes.
	Grow(n int) error
	// Close releases the memory. Bytes must not be used afterwards.
	Close() error
}

// Heap is a Region backed by an ordinary Go slice. Growth may move the
// backing array, which is why arena refs are offsets and not pointers.
type Heap struct {
	data []byte
}

// NewHeap returns a Heap with capacity for sizeHint bytes.
func NewHeap(sizeHint int) *Heap {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Heap{data: make([]byte, 0, sizeHint)}
}

func (h *Heap) Bytes() []byte { return h.data }

func (h *Heap) Grow(n int) error {
	if n < 0 {
		return fmt.Errorf("region: negative growth %d", n)
	}
	h.data = append(h.data, make([]byte, n)...)
	return nil
}

func (h *Heap) Close() error {
	h.data = nil
	return nil
}

// fixed is a Region over a reservation made up front. It never moves.
type fixed struct {
	mem     []byte
	n       int
	release func() error
}

func (f *fixed) Bytes() []byte { return f.mem[:f.n] }

func (f *fixed) Grow(n int) error {
	if n < 0 {
		return fmt.Errorf("region: negative growth %d", n)
	}
	if n > len(f.mem)-f.n {
		return fmt.Errorf("%w: have %d, need %d more (reserved %d)",
			ErrReserveExceeded, f.n, n, len(f.mem))
	}
	f.n += n
	return nil
}

func (f *fixed) Close() error {
	if f.mem == nil {
		return nil
	}
	var err error
	if f.release != nil {
		err = f.release()
	}
	f.mem, f.n = nil, 0
	return err
}
