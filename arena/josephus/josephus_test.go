package josephus

import (
	"testing"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/ring"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(t *testing.T, opts ...arena.Option) *ring.List {
	t.Helper()
	a, err := arena.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	ba, err := alloc.NewBump(a)
	require.NoError(t, err)
	return ring.New(a, ba)
}

// closedForm is the classic recurrence J(1)=0, J(k)=(J(k-1)+p) mod k.
func closedForm(n, p int32) int32 {
	j := int32(0)
	for k := int32(2); k <= n; k++ {
		j = (j + p) % k
	}
	return j + 1
}

func TestSolve_Regression(t *testing.T) {
	tests := []struct {
		n, p, want int32
	}{
		{7, 5, 6},
		{5, 5, 2},
		{5, 17, 4},
		{13, 2, 11},
	}
	for _, tt := range tests {
		got, err := Solve(newTestList(t), tt.n, tt.p)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "josephus(%d,%d)", tt.n, tt.p)
	}
}

func TestSolve_SinglePlayer(t *testing.T) {
	for _, p := range []int32{1, 2, 7, 1000} {
		got, err := Solve(newTestList(t), 1, p)
		require.NoError(t, err)
		assert.Equal(t, int32(1), got)
	}
}

func TestSolve_StepOne(t *testing.T) {
	survivor, order, err := Order(newTestList(t), 6, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, order, "p=1 removes the current player each round")
	assert.Equal(t, int32(6), survivor)
}

func TestSolve_MatchesRecurrence(t *testing.T) {
	for n := int32(1); n <= 40; n++ {
		for p := int32(1); p <= 12; p++ {
			got, err := Solve(newTestList(t), n, p)
			require.NoError(t, err)
			require.Equal(t, closedForm(n, p), got, "josephus(%d,%d)", n, p)
		}
	}
}

func TestOrder(t *testing.T) {
	survivor, order, err := Order(newTestList(t), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 6, 2, 7, 5, 1}, order)
	assert.Equal(t, int32(4), survivor)
}

func TestCircle(t *testing.T) {
	l := newTestList(t)
	one, err := Circle(l, 5)
	require.NoError(t, err)
	vs, err := l.Values(one)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, vs)
}

func TestSolve_BadInput(t *testing.T) {
	for _, c := range [][2]int32{{0, 1}, {1, 0}, {-3, 2}, {4, -1}} {
		_, err := Solve(newTestList(t), c[0], c[1])
		assert.ErrorIs(t, err, ErrBadInput, "n=%d p=%d", c[0], c[1])
	}
}

func TestSolve_Exhausted(t *testing.T) {
	l := newTestList(t, arena.WithLimit(format.HeaderSize+3*16))
	_, err := Solve(l, 4, 2)
	assert.ErrorIs(t, err, arena.ErrExhausted)
}

func TestRun(t *testing.T) {
	a, err := arena.New()
	require.NoError(t, err)
	defer a.Close()
	ba, err := alloc.NewBump(a)
	require.NoError(t, err)

	got, err := Run(a, ba, 41, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(31), got)
	assert.Equal(t, uint32(41), a.BlockCount(), "one block per player, nothing reclaimed")
}
