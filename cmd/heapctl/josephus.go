package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joshuapare/heapkit/arena/josephus"
	"github.com/joshuapare/heapkit/arena/ring"
	"github.com/spf13/cobra"
)

var (
	josephusN     int32
	josephusP     int32
	josephusOrder bool
)

// josephusGames are the games played when no --n is given.
var josephusGames = [][2]int32{{7, 5}, {5, 5}, {5, 17}, {13, 2}}

func init() {
	cmd := newJosephusCmd()
	cmd.Flags().Int32Var(&josephusN, "n", 0, "Number of players (0 = play the built-in games)")
	cmd.Flags().Int32Var(&josephusP, "p", 2, "Step count, used with --n")
	cmd.Flags().BoolVar(&josephusOrder, "order", false, "Also print the elimination order")
	rootCmd.AddCommand(cmd)
}

func newJosephusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "josephus",
		Short: "Play the Josephus elimination game",
		Long: `The josephus command seats players 1..n in a ring, eliminates every p-th
player and prints the survivor. Without --n it plays (7,5), (5,5), (5,17)
and (13,2).

Example:
  heapctl josephus
  heapctl josephus --n 41 --p 3 --order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(os.Stderr, func(s *session) error {
				return runJosephus(os.Stdout, s)
			})
		},
	}
}

func runJosephus(w io.Writer, s *session) error {
	games := josephusGames
	if josephusN != 0 {
		games = [][2]int32{{josephusN, josephusP}}
	}

	l := ring.New(s.a, s.ba)
	for _, g := range games {
		if !josephusOrder {
			survivor, err := josephus.Solve(l, g[0], g[1])
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, survivor); err != nil {
				return err
			}
			continue
		}

		survivor, order, err := josephus.Order(l, g[0], g[1])
		if err != nil {
			return err
		}
		line := strconv.AppendInt(nil, int64(survivor), 10)
		line = append(line, ':')
		for _, v := range order {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(v), 10)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
