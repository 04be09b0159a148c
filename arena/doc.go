// Package arena provides the append-only memory that every heapkit structure
// lives in.
//
// # Overview
//
// An Arena is a header block followed by allocated blocks, backed by a
// growable region (a Go slice, or an anonymous mmap reservation on unix).
// Nothing is ever freed or moved: once a block has been handed out its Ref
// stays valid for the life of the arena.
//
// # Layout
//
//	0x00  header block (format.HeaderSize bytes)
//	0x10  block 0: int32 size (negative = allocated), payload
//	....  block 1 ...
//	hw    high-water mark: next block goes here
//	end   end of backed memory (grows in 4 KiB steps)
//
// # Refs
//
// A Ref is the absolute offset of a block header. Offsets below the header
// size are never handed out, so the zero Ref is the nil reference. Payload
// slices returned by Payload and Node alias arena memory and must be
// re-resolved after any allocation, since a heap-backed region may move its
// backing array when it grows.
//
// # Errors
//
// Failures are classified with errors.Is against ErrExhausted,
// ErrIndexOutOfRange and ErrInvariant, plus ErrBadRef and ErrNilRef for
// malformed references.
//
// # Thread Safety
//
// Arena instances are not thread-safe.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/arena/alloc: bump allocation over an Arena
//   - github.com/joshuapare/heapkit/arena/verify: invariant checks
package arena
