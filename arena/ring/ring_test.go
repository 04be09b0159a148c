package ring

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(t *testing.T, opts ...arena.Option) (*arena.Arena, *List) {
	t.Helper()
	a, err := arena.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	ba, err := alloc.NewBump(a)
	require.NoError(t, err)
	return a, New(a, ba)
}

func values(t *testing.T, l *List, start arena.Ref) []int32 {
	t.Helper()
	vs, err := l.Values(start)
	require.NoError(t, err)
	return vs
}

func TestList_Make(t *testing.T) {
	_, l := newTestList(t)
	r, err := l.Make(65)
	require.NoError(t, err)

	next, err := l.Next(r)
	require.NoError(t, err)
	prev, err := l.Prev(r)
	require.NoError(t, err)
	assert.Equal(t, r, next)
	assert.Equal(t, r, prev)

	n, err := l.Len(r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// TestList_Demo replays the classic demo: A, insert B after A, insert C
// after A, remove the member after A.
func TestList_Demo(t *testing.T) {
	_, l := newTestList(t)
	var out bytes.Buffer

	head, err := l.Make('A')
	require.NoError(t, err)
	require.NoError(t, l.Print(&out, head))

	_, err = l.InsertAfter(head, 'B')
	require.NoError(t, err)
	require.NoError(t, l.Print(&out, head))

	_, err = l.InsertAfter(head, 'C')
	require.NoError(t, err)
	require.NoError(t, l.Print(&out, head))

	next, err := l.Next(head)
	require.NoError(t, err)
	require.NoError(t, l.Remove(next))
	require.NoError(t, l.Print(&out, head))

	assert.Equal(t, "A\nAB\nACB\nAB\n", out.String())
}

// TestList_InsertProperties checks length and closure after every insert of
// a random sequence.
func TestList_InsertProperties(t *testing.T) {
	a, l := newTestList(t)
	rng := rand.New(rand.NewPCG(1, 2))

	start, err := l.Make(0)
	require.NoError(t, err)
	members := []arena.Ref{start}
	model := []int32{0}

	for i := int32(1); i <= 300; i++ {
		k := rng.IntN(len(members))
		anchor := members[k]
		ref, err := l.InsertAfter(anchor, i)
		require.NoError(t, err)
		members = append(members, ref)

		// Mirror the splice in a slice model keyed by position from start.
		pos := indexOf(t, l, start, anchor)
		model = append(model[:pos+1], append([]int32{i}, model[pos+1:]...)...)

		n, err := verify.Ring(a, start)
		require.NoError(t, err, "closure after insert %d", i)
		require.Equal(t, int(i)+1, n)
	}

	if diff := cmp.Diff(model, values(t, l, start)); diff != "" {
		t.Fatalf("ring order mismatch (-want +got):\n%s", diff)
	}
}

func indexOf(t *testing.T, l *List, start, target arena.Ref) int {
	t.Helper()
	pos, i := -1, 0
	require.NoError(t, l.Walk(start, func(ref arena.Ref, _ int32) error {
		if ref == target {
			pos = i
		}
		i++
		return nil
	}))
	require.GreaterOrEqual(t, pos, 0)
	return pos
}

// TestList_RemoveProperties removes members one by one and checks the
// survivors keep their relative order.
func TestList_RemoveProperties(t *testing.T) {
	a, l := newTestList(t)
	rng := rand.New(rand.NewPCG(3, 4))

	start, err := l.Make(0)
	require.NoError(t, err)
	refs := []arena.Ref{start}
	prev := start
	for i := int32(1); i < 64; i++ {
		r, err := l.InsertAfter(prev, i)
		require.NoError(t, err)
		refs, prev = append(refs, r), r
	}
	model := make([]int32, 64)
	for i := range model {
		model[i] = int32(i)
	}

	for len(refs) > 1 {
		k := rng.IntN(len(refs))
		victim := refs[k]
		require.NoError(t, l.Remove(victim))
		refs = append(refs[:k], refs[k+1:]...)
		model = append(model[:k], model[k+1:]...)

		survivor := refs[0]
		_, err := verify.Ring(a, survivor)
		require.NoError(t, err)
		if diff := cmp.Diff(model, values(t, l, survivor)); diff != "" {
			t.Fatalf("after removing index %d (-want +got):\n%s", k, diff)
		}
	}

	assert.ErrorIs(t, l.Remove(refs[0]), ErrSoleMember)
}

// TestList_RemovedKeepsLinks checks a removed node still leads back into the ring.
func TestList_RemovedKeepsLinks(t *testing.T) {
	_, l := newTestList(t)
	a, err := l.Make(1)
	require.NoError(t, err)
	c, err := l.InsertAfter(a, 3)
	require.NoError(t, err)
	b, err := l.InsertAfter(a, 2)
	require.NoError(t, err)

	require.NoError(t, l.Remove(b))
	next, err := l.Next(b)
	require.NoError(t, err)
	assert.Equal(t, c, next)
	assert.Equal(t, []int32{3, 1}, values(t, l, next))
}

func TestList_Errors(t *testing.T) {
	a, l := newTestList(t)

	_, err := l.InsertAfter(arena.Nil, 1)
	assert.ErrorIs(t, err, arena.ErrNilRef)
	assert.ErrorIs(t, l.Remove(arena.Nil), arena.ErrNilRef)
	_, err = l.Values(arena.Nil)
	assert.ErrorIs(t, err, arena.ErrNilRef)

	x, err := l.Make(1)
	require.NoError(t, err)
	y, err := l.InsertAfter(x, 2)
	require.NoError(t, err)
	_, err = l.InsertAfter(y, 3)
	require.NoError(t, err)

	// Cut the ring open into a lasso: y.next = y.
	p, err := a.Node(y, format.RingNodeSize)
	require.NoError(t, err)
	format.PutU32(p, format.RingNextOffset, uint32(y))

	_, err = l.Values(x)
	assert.ErrorIs(t, err, arena.ErrInvariant)
	assert.ErrorIs(t, l.Remove(y), arena.ErrInvariant)
}

func TestList_Exhausted(t *testing.T) {
	_, l := newTestList(t, arena.WithLimit(format.HeaderSize+32))
	r, err := l.Make(1)
	require.NoError(t, err)
	_, err = l.InsertAfter(r, 2)
	require.NoError(t, err)

	_, err = l.InsertAfter(r, 3)
	assert.ErrorIs(t, err, arena.ErrExhausted)
	assert.Equal(t, []int32{1, 2}, values(t, l, r), "failed insert leaves the ring intact")
}

func TestList_All(t *testing.T) {
	_, l := newTestList(t)
	head, err := l.Make(1)
	require.NoError(t, err)
	for v := int32(5); v >= 2; v-- {
		_, err := l.InsertAfter(head, v)
		require.NoError(t, err)
	}

	var got []int32
	for v, err := range l.All(head) {
		require.NoError(t, err)
		got = append(got, v)
		if v == 3 {
			break
		}
	}
	if diff := cmp.Diff([]int32{1, 2, 3}, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	var errs int
	for _, err := range l.All(arena.Nil) {
		assert.ErrorIs(t, err, arena.ErrNilRef)
		errs++
	}
	assert.Equal(t, 1, errs)
}

func TestList_EmptyArenaRefs(t *testing.T) {
	_, l := newTestList(t)

	_, err := l.Len(arena.Nil)
	assert.ErrorIs(t, err, arena.ErrNilRef)
	_, err = l.Values(arena.Ref(format.HeaderSize))
	assert.ErrorIs(t, err, arena.ErrBadRef)
	for _, err := range l.All(arena.Nil) {
		assert.ErrorIs(t, err, arena.ErrNilRef)
		assert.NotErrorIs(t, err, arena.ErrInvariant)
	}
}
