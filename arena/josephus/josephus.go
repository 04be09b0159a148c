// Package josephus solves the Josephus elimination game on an arena ring.
//
// Players 1..n stand in a circle. Starting from player 1, count p players
// (the current one included), eliminate the last one counted, and continue
// counting from the player after it. The survivor is the answer.
package josephus

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/ring"
)

// ErrBadInput indicates a non-positive ring size or step count.
var ErrBadInput = errors.New("josephus: n and p must be positive")

// Circle builds the ring 1, 2, ..., n and returns the member holding 1.
// Values are inserted n down to 2, each right after 1.
func Circle(l *ring.List, n int32) (arena.Ref, error) {
	if n < 1 {
		return arena.Nil, fmt.Errorf("%w: n=%d", ErrBadInput, n)
	}
	one, err := l.Make(1)
	if err != nil {
		return arena.Nil, fmt.Errorf("josephus: circle: %w", err)
	}
	for i := n; i >= 2; i-- {
		if _, err := l.InsertAfter(one, i); err != nil {
			return arena.Nil, fmt.Errorf("josephus: circle: insert %d: %w", i, err)
		}
	}
	return one, nil
}

// Solve plays the game for n players with step p on l and returns the survivor.
func Solve(l *ring.List, n, p int32) (int32, error) {
	return play(l, n, p, nil)
}

// Order plays the game and also returns the players in elimination order.
func Order(l *ring.List, n, p int32) (survivor int32, eliminated []int32, err error) {
	eliminated = make([]int32, 0, max(n-1, 0))
	survivor, err = play(l, n, p, func(v int32) { eliminated = append(eliminated, v) })
	return survivor, eliminated, err
}

func play(l *ring.List, n, p int32, out func(int32)) (int32, error) {
	if n < 1 || p < 1 {
		return 0, fmt.Errorf("%w: n=%d p=%d", ErrBadInput, n, p)
	}
	c, err := Circle(l, n)
	if err != nil {
		return 0, err
	}

	for left := n; left > 1; left-- {
		for i := int32(1); i < p; i++ {
			if c, err = l.Next(c); err != nil {
				return 0, err
			}
		}
		if out != nil {
			v, err := l.Value(c)
			if err != nil {
				return 0, err
			}
			out(v)
		}
		if err := l.Remove(c); err != nil {
			return 0, fmt.Errorf("josephus: eliminate: %w", err)
		}
		if c, err = l.Next(c); err != nil {
			return 0, err
		}
	}

	// One member left: it must link to itself.
	next, err := l.Next(c)
	if err != nil {
		return 0, err
	}
	if next != c {
		return 0, fmt.Errorf("josephus: survivor 0x%X not self-linked: %w", uint32(c), arena.ErrInvariant)
	}
	return l.Value(c)
}

// Run allocates a ring on a through al and solves (n, p).
func Run(a *arena.Arena, al alloc.Allocator, n, p int32) (int32, error) {
	return Solve(ring.New(a, al), n, p)
}
