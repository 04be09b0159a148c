// Package bst implements a binary search tree of distinct int32 values whose
// nodes live in an arena.
//
// Each node is exclusively owned by its parent's left or right slot (the
// caller owns the root). Nodes are created on first insertion of a value and
// only their child slots change afterwards.
package bst

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

// ContainsMode selects how Contains descends when x is smaller than a node
// that has no left child.
type ContainsMode int

const (
	// ContainsFaithful keeps descending into the right child in that case.
	// It reaches the same answer as ContainsStrict on any well-ordered tree,
	// only visiting more nodes.
	ContainsFaithful ContainsMode = iota

	// ContainsStrict reports absence as soon as the left slot is empty.
	ContainsStrict
)

func (m ContainsMode) String() string {
	switch m {
	case ContainsFaithful:
		return "faithful"
	case ContainsStrict:
		return "strict"
	default:
		return fmt.Sprintf("ContainsMode(%d)", int(m))
	}
}

// Option configures a Tree.
type Option func(*Tree)

// WithContainsMode sets the Contains traversal mode.
func WithContainsMode(m ContainsMode) Option {
	return func(t *Tree) { t.mode = m }
}

// Tree operates on tree nodes stored in an arena. It holds no nodes itself:
// a tree is identified by its root Ref.
type Tree struct {
	a    *arena.Arena
	al   alloc.Allocator
	mode ContainsMode
}

// New returns a Tree that reads nodes from a and allocates them from al.
func New(a *arena.Arena, al alloc.Allocator, opts ...Option) *Tree {
	t := &Tree{a: a, al: al}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mode returns the Contains traversal mode.
func (t *Tree) Mode() ContainsMode { return t.mode }

// Make allocates a singleton node holding v.
func (t *Tree) Make(v int32) (arena.Ref, error) {
	ref, p, err := t.al.Alloc(format.TreeNodeSize)
	if err != nil {
		return arena.Nil, fmt.Errorf("bst: make %d: %w", v, err)
	}
	format.PutI32(p, format.ValueOffset, v)
	format.PutU32(p, format.TreeLeftOffset, uint32(arena.Nil))
	format.PutU32(p, format.TreeRightOffset, uint32(arena.Nil))
	return ref, nil
}

type node struct {
	value       int32
	left, right arena.Ref
}

func (t *Tree) load(ref arena.Ref) (node, error) {
	p, err := t.a.Node(ref, format.TreeNodeSize)
	if err != nil {
		return node{}, fmt.Errorf("bst: node 0x%X: %w", uint32(ref), err)
	}
	return node{
		value: format.ReadI32(p, format.ValueOffset),
		left:  arena.Ref(format.ReadU32(p, format.TreeLeftOffset)),
		right: arena.Ref(format.ReadU32(p, format.TreeRightOffset)),
	}, nil
}

func (t *Tree) link(parent arena.Ref, off int, child arena.Ref) error {
	// Re-resolve: the allocation that produced child may have moved memory.
	p, err := t.a.Node(parent, format.TreeNodeSize)
	if err != nil {
		return fmt.Errorf("bst: link 0x%X: %w", uint32(parent), err)
	}
	format.PutU32(p, off, uint32(child))
	return nil
}

// maxSteps bounds any walk: a well-formed path visits each block at most once.
func (t *Tree) maxSteps() int { return int(t.a.BlockCount()) + 1 }

// Value returns the value stored at ref.
func (t *Tree) Value(ref arena.Ref) (int32, error) {
	n, err := t.load(ref)
	return n.value, err
}

// Children returns the left and right child refs of ref.
func (t *Tree) Children(ref arena.Ref) (left, right arena.Ref, err error) {
	n, err := t.load(ref)
	return n.left, n.right, err
}

// Insert adds x below root. Inserting a value already present is a no-op.
func (t *Tree) Insert(root arena.Ref, x int32) error {
	cur := root
	for range t.maxSteps() {
		n, err := t.load(cur)
		if err != nil {
			return err
		}
		if x == n.value {
			return nil
		}
		slot, next := format.TreeRightOffset, n.right
		if x < n.value {
			slot, next = format.TreeLeftOffset, n.left
		}
		if next.IsNil() {
			child, err := t.Make(x)
			if err != nil {
				return err
			}
			return t.link(cur, slot, child)
		}
		cur = next
	}
	return fmt.Errorf("bst: insert %d: path longer than %d nodes: %w", x, t.maxSteps(), arena.ErrInvariant)
}

// Contains reports whether x is stored below root.
func (t *Tree) Contains(root arena.Ref, x int32) (bool, error) {
	cur := root
	for range t.maxSteps() {
		n, err := t.load(cur)
		if err != nil {
			return false, err
		}
		switch {
		case x == n.value:
			return true, nil
		case x < n.value && !n.left.IsNil():
			cur = n.left
		case x < n.value && t.mode == ContainsStrict:
			return false, nil
		case !n.right.IsNil():
			cur = n.right
		default:
			return false, nil
		}
	}
	return false, fmt.Errorf("bst: contains %d: path longer than %d nodes: %w", x, t.maxSteps(), arena.ErrInvariant)
}

// Print writes the parenthesized traversal of root to w: '(' then the left
// subtree, the decimal value, the right subtree, then ')'.
//
//	root 1, inserts 17 5 8  =>  (1((5(8))17))
func (t *Tree) Print(w io.Writer, root arena.Ref) error {
	bw := bufio.NewWriter(w)
	var scratch [12]byte
	if err := t.print(bw, root, 0, scratch[:0]); err != nil {
		return err
	}
	return bw.Flush()
}

func (t *Tree) print(w *bufio.Writer, ref arena.Ref, depth int, scratch []byte) error {
	if depth >= t.maxSteps() {
		return fmt.Errorf("bst: print: depth %d exceeds node count: %w", depth, arena.ErrInvariant)
	}
	n, err := t.load(ref)
	if err != nil {
		return err
	}
	w.WriteByte('(')
	if !n.left.IsNil() {
		if err := t.print(w, n.left, depth+1, scratch); err != nil {
			return err
		}
	}
	w.Write(strconv.AppendInt(scratch, int64(n.value), 10))
	if !n.right.IsNil() {
		if err := t.print(w, n.right, depth+1, scratch); err != nil {
			return err
		}
	}
	return w.WriteByte(')')
}

// Values returns the values below root in ascending order.
func (t *Tree) Values(root arena.Ref) ([]int32, error) {
	var out []int32
	_, err := t.walk(root, 0, func(v int32) bool {
		out = append(out, v)
		return true
	})
	return out, err
}

// InOrder yields the values below root in ascending order. A walk that
// fails yields the error once and stops.
func (t *Tree) InOrder(root arena.Ref) iter.Seq2[int32, error] {
	return func(yield func(int32, error) bool) {
		if _, err := t.walk(root, 0, func(v int32) bool { return yield(v, nil) }); err != nil {
			yield(0, err)
		}
	}
}

// walk visits values in order and reports false once visit asks to stop.
func (t *Tree) walk(ref arena.Ref, depth int, visit func(int32) bool) (bool, error) {
	if depth >= t.maxSteps() {
		return false, fmt.Errorf("bst: walk: depth %d exceeds node count: %w", depth, arena.ErrInvariant)
	}
	n, err := t.load(ref)
	if err != nil {
		return false, err
	}
	if !n.left.IsNil() {
		if more, err := t.walk(n.left, depth+1, visit); !more || err != nil {
			return more, err
		}
	}
	if !visit(n.value) {
		return false, nil
	}
	if !n.right.IsNil() {
		return t.walk(n.right, depth+1, visit)
	}
	return true, nil
}

// Height returns the number of nodes on the longest root-to-leaf path, which
// is also the deepest parenthesis nesting Print produces.
func (t *Tree) Height(root arena.Ref) (int, error) {
	return t.height(root, 0)
}

func (t *Tree) height(ref arena.Ref, depth int) (int, error) {
	if ref.IsNil() {
		return 0, nil
	}
	if depth >= t.maxSteps() {
		return 0, fmt.Errorf("bst: height: depth %d exceeds node count: %w", depth, arena.ErrInvariant)
	}
	n, err := t.load(ref)
	if err != nil {
		return 0, err
	}
	l, err := t.height(n.left, depth+1)
	if err != nil {
		return 0, err
	}
	r, err := t.height(n.right, depth+1)
	if err != nil {
		return 0, err
	}
	return 1 + max(l, r), nil
}
