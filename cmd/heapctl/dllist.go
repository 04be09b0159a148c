package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/heapkit/arena/ring"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	dllistValues []int32
	dllistLatin1 bool
)

func init() {
	cmd := newDllistCmd()
	cmd.Flags().Int32SliceVar(&dllistValues, "values", []int32{'A', 'B', 'C'}, "First value, then values inserted after it")
	cmd.Flags().BoolVar(&dllistLatin1, "latin1", false, "Decode printed bytes as Latin-1 so values 128-255 come out as UTF-8")
	rootCmd.AddCommand(cmd)
}

func newDllistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dllist",
		Short: "Exercise a circular doubly-linked list",
		Long: `The dllist command makes a one-member ring from the first --values entry,
inserts each remaining value right after it, then removes the member after
the first one. The ring is printed after every step, one byte per member.

Example:
  heapctl dllist
  heapctl dllist --values 72,105,33
  heapctl dllist --values 233,232,234 --latin1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(os.Stderr, func(s *session) error {
				return runDllist(os.Stdout, s)
			})
		},
	}
}

func runDllist(w io.Writer, s *session) error {
	if len(dllistValues) == 0 {
		return errors.New("dllist: --values needs at least one value")
	}
	if dllistLatin1 {
		dw := transform.NewWriter(w, charmap.ISO8859_1.NewDecoder())
		defer dw.Close()
		w = dw
	}

	l := ring.New(s.a, s.ba)
	head, err := l.Make(dllistValues[0])
	if err != nil {
		return err
	}
	show := func() error {
		if verifyRun {
			if _, err := verify.Ring(s.a, head); err != nil {
				return fmt.Errorf("ring check failed: %w", err)
			}
		}
		return l.Print(w, head)
	}
	if err := show(); err != nil {
		return err
	}

	for _, v := range dllistValues[1:] {
		if _, err := l.InsertAfter(head, v); err != nil {
			return err
		}
		if err := show(); err != nil {
			return err
		}
	}

	next, err := l.Next(head)
	if err != nil {
		return err
	}
	if err := l.Remove(next); err != nil {
		if errors.Is(err, ring.ErrSoleMember) {
			return nil
		}
		return err
	}
	return show()
}
