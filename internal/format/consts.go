// Package format describes how heapkit lays structures out in arena memory:
// the arena header block, the block (cell) header that precedes every
// allocation, and the field offsets of each node kind. Higher-level packages
// read and write nodes only through these constants.
package format

// HeapSignature is the four-byte magic at the start of every arena.
var HeapSignature = []byte{'h', 'e', 'a', 'p'}

const (
	// HeaderSize is the size of the arena header block. Offsets below
	// HeaderSize are never handed out, so offset 0 doubles as the nil ref.
	//
	//	Offset  Size  Description
	//	0x00    4     'h' 'e' 'a' 'p'
	//	0x04    4     Data size: bytes backed past the header
	//	0x08    4     High-water mark: absolute offset of the next block
	//	0x0C    4     Block count
	HeaderSize = 0x10

	SignatureOffset  = 0x00
	DataSizeOffset   = 0x04
	HighWaterOffset  = 0x08
	BlockCountOffset = 0x0C

	// CellHeaderSize is the signed size field preceding every block.
	CellHeaderSize = 4

	// CellAlignment is the alignment of every block's total size.
	CellAlignment     = 8
	CellAlignmentMask = CellAlignment - 1

	// PageSize is the granularity in which the arena region grows.
	PageSize     = 0x1000
	PageSizeMask = PageSize - 1

	// MaxArenaSize bounds the region so every offset fits in a uint32 ref
	// and every block size fits in the signed header.
	MaxArenaSize = 1<<31 - 1
)

// Node payload layouts. Every node kind stores its int32 payload first.
const (
	ValueOffset = 0x00

	// Binary search tree node.
	TreeLeftOffset  = 0x04
	TreeRightOffset = 0x08
	TreeNodeSize    = 0x0C

	// Ring (circular doubly-linked list) node.
	RingNextOffset = 0x04
	RingPrevOffset = 0x08
	RingNodeSize   = 0x0C

	// Fixed-length int32 sequence: length followed by the cells.
	SeqLenOffset   = 0x00
	SeqCellsOffset = 0x04
	SeqCellSize    = 4
)
