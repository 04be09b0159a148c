// Package verify checks heapkit's structural invariants directly against
// arena memory.
//
// # Overview
//
// The checks read node layouts through internal/format rather than through
// the bst and ring packages, so they catch corruption those packages would
// propagate:
//
//   - Header: signature, data size matches backed memory, high-water mark in
//     range, blocks tile [header, high-water) exactly and all are allocated,
//     block count matches.
//   - Ring: for every member x, x.next.prev == x and x.prev.next == x, and
//     the walk from start closes.
//   - Tree: left subtree < value < right subtree at every node, and no node
//     is reachable twice (no sharing, no cycles).
//
// # ValidationError
//
// All checks return *ValidationError on failure. It unwraps to
// arena.ErrInvariant, so callers can classify with errors.Is:
//
//	if err := verify.Ring(a, start); errors.Is(err, arena.ErrInvariant) {
//	    var verr *verify.ValidationError
//	    errors.As(err, &verr)
//	    fmt.Printf("%s at 0x%X\n", verr.Type, verr.Offset)
//	}
//
// # Usage in Tests
//
//	ref, _ := l.InsertAfter(start, 7)
//	if _, err := verify.Ring(a, start); err != nil {
//	    t.Fatalf("ring broken after insert: %v", err)
//	}
package verify
