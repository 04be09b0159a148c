package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/heapkit/arena/pascal"
	"github.com/spf13/cobra"
)

var (
	pascalRows   int
	pascalFilled string
	pascalEmpty  string
)

func init() {
	cmd := newPascalCmd()
	cmd.Flags().IntVar(&pascalRows, "rows", pascal.DefaultRows, "Number of rows")
	cmd.Flags().StringVar(&pascalFilled, "filled", string(rune(pascal.DefaultFilled)), "Marker for coefficients not divisible by 7")
	cmd.Flags().StringVar(&pascalEmpty, "empty", string(rune(pascal.DefaultEmpty)), "Marker for coefficients divisible by 7")
	rootCmd.AddCommand(cmd)
}

func newPascalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pascal",
		Short: "Print Pascal's triangle modulo 7",
		Long: `The pascal command prints one line per row of Pascal's triangle, marking
each coefficient that is not divisible by 7.

Example:
  heapctl pascal
  heapctl pascal --rows 49 --filled '#' --empty ' '`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(os.Stderr, func(s *session) error {
				return runPascal(os.Stdout, s)
			})
		},
	}
}

func runPascal(w io.Writer, s *session) error {
	filled, err := markerByte("filled", pascalFilled)
	if err != nil {
		return err
	}
	empty, err := markerByte("empty", pascalEmpty)
	if err != nil {
		return err
	}
	eng := pascal.New(s.a, s.ba, pascal.Options{Filled: filled, Empty: empty})
	return eng.Run(w, pascalRows)
}

func markerByte(name, v string) (byte, error) {
	if len(v) != 1 {
		return 0, fmt.Errorf("--%s must be a single byte, got %q", name, v)
	}
	return v[0], nil
}
