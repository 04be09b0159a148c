// Package ring implements circular doubly-linked lists of int32 values whose
// nodes live in an arena.
//
// A ring has no head and no owner: any member Ref is a handle to the whole
// ring. For every member x, x.next.prev == x and x.prev.next == x, and
// following next from x returns to x after exactly len(ring) steps.
package ring

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

// ErrSoleMember indicates an attempt to remove the only member of a ring.
var ErrSoleMember = errors.New("ring: cannot remove sole member")

var errStop = errors.New("ring: stop")

// List operates on ring nodes stored in an arena.
type List struct {
	a  *arena.Arena
	al alloc.Allocator
}

// New returns a List that reads nodes from a and allocates them from al.
func New(a *arena.Arena, al alloc.Allocator) *List {
	return &List{a: a, al: al}
}

type node struct {
	value      int32
	next, prev arena.Ref
}

func (l *List) payload(ref arena.Ref) ([]byte, error) {
	p, err := l.a.Node(ref, format.RingNodeSize)
	if err != nil {
		return nil, fmt.Errorf("ring: node 0x%X: %w", uint32(ref), err)
	}
	return p, nil
}

func (l *List) load(ref arena.Ref) (node, error) {
	p, err := l.payload(ref)
	if err != nil {
		return node{}, err
	}
	return node{
		value: format.ReadI32(p, format.ValueOffset),
		next:  arena.Ref(format.ReadU32(p, format.RingNextOffset)),
		prev:  arena.Ref(format.ReadU32(p, format.RingPrevOffset)),
	}, nil
}

func (l *List) setLink(ref arena.Ref, off int, to arena.Ref) error {
	p, err := l.payload(ref)
	if err != nil {
		return err
	}
	format.PutU32(p, off, uint32(to))
	return nil
}

// maxSteps bounds any walk around a ring: no ring can hold more members
// than there are blocks. At least one step is taken so a bad start ref
// reports its own error.
func (l *List) maxSteps() int { return max(int(l.a.BlockCount()), 1) }

// Make allocates a one-member ring holding v: next and prev point at itself.
func (l *List) Make(v int32) (arena.Ref, error) {
	ref, p, err := l.al.Alloc(format.RingNodeSize)
	if err != nil {
		return arena.Nil, fmt.Errorf("ring: make %d: %w", v, err)
	}
	format.PutI32(p, format.ValueOffset, v)
	format.PutU32(p, format.RingNextOffset, uint32(ref))
	format.PutU32(p, format.RingPrevOffset, uint32(ref))
	return ref, nil
}

// InsertAfter splices a new node holding v between anchor and anchor.next
// and returns it.
func (l *List) InsertAfter(anchor arena.Ref, v int32) (arena.Ref, error) {
	if _, err := l.load(anchor); err != nil {
		return arena.Nil, err
	}
	e, err := l.Make(v)
	if err != nil {
		return arena.Nil, err
	}
	// Reload: the allocation may have moved arena memory.
	an, err := l.load(anchor)
	if err != nil {
		return arena.Nil, err
	}

	// e.next = anchor.next; anchor.next = e; e.next.prev = e; e.prev = anchor
	if err := l.setLink(e, format.RingNextOffset, an.next); err != nil {
		return arena.Nil, err
	}
	if err := l.setLink(anchor, format.RingNextOffset, e); err != nil {
		return arena.Nil, err
	}
	if err := l.setLink(an.next, format.RingPrevOffset, e); err != nil {
		return arena.Nil, err
	}
	if err := l.setLink(e, format.RingPrevOffset, anchor); err != nil {
		return arena.Nil, err
	}
	return e, nil
}

// Remove splices n out of its ring. n keeps its own next and prev links, so
// a caller holding n can still step to the member that followed it.
// Removing the sole member fails with ErrSoleMember.
func (l *List) Remove(n arena.Ref) error {
	x, err := l.load(n)
	if err != nil {
		return err
	}
	if x.next == n || x.prev == n {
		if x.next == n && x.prev == n {
			return ErrSoleMember
		}
		return fmt.Errorf("ring: remove 0x%X: half self-linked: %w", uint32(n), arena.ErrInvariant)
	}

	prev, err := l.load(x.prev)
	if err != nil {
		return err
	}
	next, err := l.load(x.next)
	if err != nil {
		return err
	}
	if prev.next != n || next.prev != n {
		return fmt.Errorf("ring: remove 0x%X: neighbours do not link back: %w", uint32(n), arena.ErrInvariant)
	}

	if err := l.setLink(x.prev, format.RingNextOffset, x.next); err != nil {
		return err
	}
	return l.setLink(x.next, format.RingPrevOffset, x.prev)
}

// Value returns the value stored at ref.
func (l *List) Value(ref arena.Ref) (int32, error) {
	x, err := l.load(ref)
	return x.value, err
}

// Next returns the member after ref.
func (l *List) Next(ref arena.Ref) (arena.Ref, error) {
	x, err := l.load(ref)
	return x.next, err
}

// Prev returns the member before ref.
func (l *List) Prev(ref arena.Ref) (arena.Ref, error) {
	x, err := l.load(ref)
	return x.prev, err
}

// Walk visits start and then each following member until start comes
// around again. A ring that does not close within the arena's block count
// fails with arena.ErrInvariant.
func (l *List) Walk(start arena.Ref, visit func(ref arena.Ref, value int32) error) error {
	cur := start
	for range l.maxSteps() {
		x, err := l.load(cur)
		if err != nil {
			return err
		}
		if err := visit(cur, x.value); err != nil {
			return err
		}
		cur = x.next
		if cur == start {
			return nil
		}
	}
	return fmt.Errorf("ring: walk from 0x%X does not close within %d steps: %w",
		uint32(start), l.maxSteps(), arena.ErrInvariant)
}

// All yields the ring's values in next order beginning at start. A walk
// that fails yields the error once and stops.
func (l *List) All(start arena.Ref) iter.Seq2[int32, error] {
	return func(yield func(int32, error) bool) {
		err := l.Walk(start, func(_ arena.Ref, v int32) error {
			if !yield(v, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(0, err)
		}
	}
}

// Values returns the ring's values in next order beginning at start.
func (l *List) Values(start arena.Ref) ([]int32, error) {
	var out []int32
	err := l.Walk(start, func(_ arena.Ref, v int32) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Len returns the number of members in start's ring.
func (l *List) Len(start arena.Ref) (int, error) {
	n := 0
	err := l.Walk(start, func(arena.Ref, int32) error {
		n++
		return nil
	})
	return n, err
}

// Print writes each value from start onward as a single byte, then a newline.
func (l *List) Print(w io.Writer, start arena.Ref) error {
	bw := bufio.NewWriter(w)
	err := l.Walk(start, func(_ arena.Ref, v int32) error {
		return bw.WriteByte(byte(v))
	})
	if err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}
