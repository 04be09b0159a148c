package verify

import (
	"bytes"
	"fmt"
	"math"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes one violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap classifies every validation failure as an invariant violation.
func (e *ValidationError) Unwrap() error { return arena.ErrInvariant }

func fail(typ string, off int, msg string, args ...any) error {
	return &ValidationError{Type: typ, Message: fmt.Sprintf(msg, args...), Offset: off}
}

// AllInvariants validates the arena header and block tiling. Structure
// invariants need a root, so rings and trees are checked with Ring and Tree.
func AllInvariants(a *arena.Arena) error {
	return Header(a)
}

// Header validates the header block and that allocated blocks tile the
// region from the header to the high-water mark.
func Header(a *arena.Arena) error {
	data := a.Bytes()
	if len(data) < format.HeaderSize {
		return fail("Header", -1, "arena too small: %d bytes (need %d)", len(data), format.HeaderSize)
	}
	if !bytes.Equal(data[format.SignatureOffset:format.SignatureOffset+4], format.HeapSignature) {
		return fail("Header", format.SignatureOffset, "invalid signature: got %q, expected %q",
			data[format.SignatureOffset:format.SignatureOffset+4], format.HeapSignature)
	}
	if ds := int(format.ReadU32(data, format.DataSizeOffset)); ds != len(data)-format.HeaderSize {
		return fail("Header", format.DataSizeOffset, "data size %d, backed %d", ds, len(data)-format.HeaderSize)
	}
	hw := int(format.ReadI32(data, format.HighWaterOffset))
	if hw < format.HeaderSize || hw > len(data) {
		return fail("Header", format.HighWaterOffset, "high-water 0x%X outside [0x%X, 0x%X]",
			hw, format.HeaderSize, len(data))
	}

	var count uint32
	for off := format.HeaderSize; off < hw; {
		cell, next, err := format.NextCell(data, off, hw)
		if err != nil {
			return fail("Blocks", off, "%v", err)
		}
		if cell.Free {
			return fail("Blocks", off, "block not marked allocated (size %d)", cell.Size)
		}
		count++
		off = next
	}
	if stored := format.ReadU32(data, format.BlockCountOffset); stored != count {
		return fail("Header", format.BlockCountOffset, "block count %d, found %d", stored, count)
	}
	return nil
}

type ringNode struct {
	value      int32
	next, prev arena.Ref
}

func loadRing(a *arena.Arena, ref arena.Ref) (ringNode, error) {
	p, err := a.Node(ref, format.RingNodeSize)
	if err != nil {
		return ringNode{}, fail("Ring", int(ref), "%v", err)
	}
	return ringNode{
		value: format.ReadI32(p, format.ValueOffset),
		next:  arena.Ref(format.ReadU32(p, format.RingNextOffset)),
		prev:  arena.Ref(format.ReadU32(p, format.RingPrevOffset)),
	}, nil
}

// Ring validates the closure invariant for every member of start's ring and
// returns the ring's size.
func Ring(a *arena.Arena, start arena.Ref) (int, error) {
	limit := max(int(a.BlockCount()), 1)
	cur := start
	for n := 1; n <= limit; n++ {
		x, err := loadRing(a, cur)
		if err != nil {
			return 0, err
		}
		next, err := loadRing(a, x.next)
		if err != nil {
			return 0, err
		}
		if next.prev != cur {
			return 0, fail("Ring", int(cur), "next (0x%X) links back to 0x%X", uint32(x.next), uint32(next.prev))
		}
		prev, err := loadRing(a, x.prev)
		if err != nil {
			return 0, err
		}
		if prev.next != cur {
			return 0, fail("Ring", int(cur), "prev (0x%X) links forward to 0x%X", uint32(x.prev), uint32(prev.next))
		}
		cur = x.next
		if cur == start {
			return n, nil
		}
	}
	return 0, fail("Ring", int(start), "walk does not close within %d blocks", limit)
}

// Tree validates BST ordering below root and returns the node count.
func Tree(a *arena.Arena, root arena.Ref) (int, error) {
	seen := make(map[arena.Ref]struct{})
	return checkTree(a, root, math.MinInt64, math.MaxInt64, seen)
}

// checkTree requires every value below ref to lie strictly inside (lo, hi).
func checkTree(a *arena.Arena, ref arena.Ref, lo, hi int64, seen map[arena.Ref]struct{}) (int, error) {
	if _, dup := seen[ref]; dup {
		return 0, fail("Tree", int(ref), "node reachable twice")
	}
	seen[ref] = struct{}{}

	p, err := a.Node(ref, format.TreeNodeSize)
	if err != nil {
		return 0, fail("Tree", int(ref), "%v", err)
	}
	v := int64(format.ReadI32(p, format.ValueOffset))
	left := arena.Ref(format.ReadU32(p, format.TreeLeftOffset))
	right := arena.Ref(format.ReadU32(p, format.TreeRightOffset))
	if v <= lo || v >= hi {
		return 0, fail("Tree", int(ref), "value %d outside (%d, %d)", v, lo, hi)
	}

	n := 1
	if !left.IsNil() {
		c, err := checkTree(a, left, lo, v, seen)
		if err != nil {
			return 0, err
		}
		n += c
	}
	if !right.IsNil() {
		c, err := checkTree(a, right, v, hi, seen)
		if err != nil {
			return 0, err
		}
		n += c
	}
	return n, nil
}
