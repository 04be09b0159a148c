package main

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/logger"
)

// session is the process-wide arena and its allocator. Every program run by
// one heapctl invocation allocates from the same session.
type session struct {
	a  *arena.Arena
	ba *alloc.Bump
}

func newSession() (*session, error) {
	backing, err := arena.ParseBacking(backingName)
	if err != nil {
		return nil, err
	}
	a, err := arena.New(arena.WithLimit(arenaLimit), arena.WithBacking(backing))
	if err != nil {
		return nil, fmt.Errorf("failed to create arena: %w", err)
	}
	ba, err := alloc.NewBump(a)
	if err != nil {
		a.Close()
		return nil, err
	}
	return &session{a: a, ba: ba}, nil
}

// withSession opens a session, runs fn, then checks the arena and reports
// statistics as the global flags request.
func withSession(statsOut io.Writer, fn func(s *session) error) (err error) {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.a.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := fn(s); err != nil {
		return err
	}
	if verifyRun {
		if err := verify.AllInvariants(s.a); err != nil {
			return fmt.Errorf("arena check failed: %w", err)
		}
	}
	st := s.ba.Stats()
	logger.Info("run complete", "blocks", st.Blocks, "allocated", st.Allocated, "backed", st.Backed)
	if showStats {
		printStats(statsOut, st)
	}
	return nil
}

func printStats(w io.Writer, st alloc.Stats) {
	limit := "none"
	if st.Limit != 0 {
		limit = fmt.Sprintf("%d", st.Limit)
	}
	fmt.Fprintf(w, "arena: %d blocks, %d bytes allocated, high-water 0x%X, %d bytes backed, limit %s\n",
		st.Blocks, st.Allocated, st.HighWater, st.Backed, limit)
}
