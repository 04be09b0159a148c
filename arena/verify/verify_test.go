package verify

import (
	"errors"
	"testing"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/bst"
	"github.com/joshuapare/heapkit/arena/ring"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArena(t *testing.T) (*arena.Arena, *alloc.Bump) {
	t.Helper()
	a, err := arena.New()
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	ba, err := alloc.NewBump(a)
	require.NoError(t, err)
	return a, ba
}

func requireInvariant(t *testing.T, err error, typ string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, arena.ErrInvariant), "should unwrap to ErrInvariant: %v", err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, typ, verr.Type)
}

func TestHeader_Valid(t *testing.T) {
	a, ba := newTestArena(t)
	require.NoError(t, AllInvariants(a), "empty arena")

	for i := range 50 {
		_, _, err := ba.Alloc(int32(i))
		require.NoError(t, err)
	}
	require.NoError(t, AllInvariants(a))
}

func TestHeader_Corruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(data []byte, first int)
		typ     string
		msg     string
	}{
		{"signature", func(d []byte, _ int) { copy(d, "XXXX") }, "Header", "invalid signature"},
		{"data size", func(d []byte, _ int) { format.PutU32(d, format.DataSizeOffset, 1) }, "Header", "data size"},
		{"high-water", func(d []byte, _ int) { format.PutI32(d, format.HighWaterOffset, 4) }, "Header", "high-water"},
		{"block count", func(d []byte, _ int) { format.PutU32(d, format.BlockCountOffset, 9) }, "Header", "block count"},
		{"free block", func(d []byte, first int) { format.PutI32(d, first, 16) }, "Blocks", "not marked allocated"},
		{"misaligned block", func(d []byte, first int) { format.PutI32(d, first, -12) }, "Blocks", "aligned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ba := newTestArena(t)
			ref, _, err := ba.Alloc(format.TreeNodeSize)
			require.NoError(t, err)
			_, _, err = ba.Alloc(format.TreeNodeSize)
			require.NoError(t, err)

			tt.corrupt(a.Bytes(), int(ref))
			err = Header(a)
			requireInvariant(t, err, tt.typ)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRing(t *testing.T) {
	a, ba := newTestArena(t)
	l := ring.New(a, ba)

	start, err := l.Make(1)
	require.NoError(t, err)
	n, err := Ring(a, start)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	second, err := l.InsertAfter(start, 2)
	require.NoError(t, err)
	_, err = l.InsertAfter(second, 3)
	require.NoError(t, err)
	n, err = Ring(a, second)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Break second.prev so start.next no longer links back.
	p, err := a.Node(second, format.RingNodeSize)
	require.NoError(t, err)
	format.PutU32(p, format.RingPrevOffset, uint32(second))
	_, err = Ring(a, start)
	requireInvariant(t, err, "Ring")
}

func TestRing_Open(t *testing.T) {
	a, ba := newTestArena(t)
	l := ring.New(a, ba)
	start, err := l.Make(1)
	require.NoError(t, err)

	_, err = Ring(a, arena.Nil)
	requireInvariant(t, err, "Ring")

	// Point next at a block that is not a ring node.
	other, _, err := ba.Alloc(0)
	require.NoError(t, err)
	p, err := a.Node(start, format.RingNodeSize)
	require.NoError(t, err)
	format.PutU32(p, format.RingNextOffset, uint32(other))
	_, err = Ring(a, start)
	requireInvariant(t, err, "Ring")
}

func TestTree(t *testing.T) {
	a, ba := newTestArena(t)
	tr := bst.New(a, ba)
	root, err := tr.Make(50)
	require.NoError(t, err)
	for _, x := range []int32{30, 70, 20, 40, 60, 80} {
		require.NoError(t, tr.Insert(root, x))
	}
	n, err := Tree(a, root)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	left, _, err := tr.Children(root)
	require.NoError(t, err)
	p, err := a.Node(left, format.TreeNodeSize)
	require.NoError(t, err)

	// 40 lives under 30 on the right; making 30 hold 45 breaks 40 < 45.
	format.PutI32(p, format.ValueOffset, 45)
	_, err = Tree(a, root)
	requireInvariant(t, err, "Tree")

	format.PutI32(p, format.ValueOffset, 30)
	format.PutU32(p, format.TreeLeftOffset, uint32(root))
	_, err = Tree(a, root)
	requireInvariant(t, err, "Tree")
	assert.Contains(t, err.Error(), "reachable twice")
}

func TestValidationError_Format(t *testing.T) {
	withOff := &ValidationError{Type: "Ring", Message: "broken", Offset: 0x20}
	assert.Equal(t, "Ring at offset 0x20: broken", withOff.Error())
	noOff := &ValidationError{Type: "Header", Message: "tiny", Offset: -1}
	assert.Equal(t, "Header: tiny", noOff.Error())
}

func TestRing_EmptyArena(t *testing.T) {
	a, _ := newTestArena(t)

	_, err := Ring(a, arena.Nil)
	requireInvariant(t, err, "Ring")
	assert.Contains(t, err.Error(), arena.ErrNilRef.Error())
	assert.NotContains(t, err.Error(), "does not close")
}

func TestAllInvariants_BlockTiling(t *testing.T) {
	a, ba := newTestArena(t)
	ref, _, err := ba.Alloc(format.RingNodeSize)
	require.NoError(t, err)
	_, _, err = ba.Alloc(format.RingNodeSize)
	require.NoError(t, err)
	require.NoError(t, AllInvariants(a))

	format.PutI32(a.Bytes(), int(ref), 16)
	requireInvariant(t, AllInvariants(a), "Blocks")
}
