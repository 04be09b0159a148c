// Package alloc hands out arena blocks with a bump pointer.
//
// # Overview
//
// Bump is the only allocation primitive in heapkit. Every tree node, ring
// node and sequence is carved from the arena's high-water mark, which only
// ever moves forward. Blocks are never reclaimed, relocated or reused, so a
// Ref returned by Alloc is valid for the rest of the arena's life.
//
// # Usage Example
//
//	a, err := arena.New(arena.WithLimit(1 << 20))
//	if err != nil {
//	    return err
//	}
//	ba, err := alloc.NewBump(a)
//	if err != nil {
//	    return err
//	}
//
//	ref, payload, err := ba.Alloc(format.RingNodeSize)
//	if errors.Is(err, arena.ErrExhausted) {
//	    // limit reached
//	}
//
// # Growth
//
// When a block would cross the end of backed memory the arena grows by the
// shortfall rounded up to 4 KiB, clipped to the arena limit. A request that
// cannot fit under the limit fails with arena.ErrExhausted and leaves the
// arena unchanged.
//
// # Thread Safety
//
// Bump instances are not thread-safe.
package alloc
