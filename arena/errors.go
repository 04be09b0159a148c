package arena

import "errors"

var (
	// ErrExhausted indicates the arena cannot back another block within its limit.
	ErrExhausted = errors.New("arena: allocation exhausted")

	// ErrIndexOutOfRange indicates positional access beyond a sequence's length.
	ErrIndexOutOfRange = errors.New("arena: index out of range")

	// ErrInvariant indicates a structural invariant (ring closure, tree
	// ordering, header consistency) does not hold.
	ErrInvariant = errors.New("arena: invariant violation")

	// ErrBadRef indicates a reference that does not name an allocated block
	// large enough for the requested node.
	ErrBadRef = errors.New("arena: bad reference")

	// ErrNilRef indicates the nil reference was used where a node is required.
	ErrNilRef = errors.New("arena: nil reference")

	// ErrGrowFail indicates the backing region could not be extended.
	ErrGrowFail = errors.New("arena: grow failed")
)
