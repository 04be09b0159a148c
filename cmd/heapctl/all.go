package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run bst, dllist, josephus and pascal on one arena",
		Long: `The all command runs every program in turn, with each command's default
settings, allocating everything from a single shared arena.

Example:
  heapctl all --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(os.Stderr, func(s *session) error {
				return runAll(os.Stdout, s)
			})
		},
	})
}

func runAll(w io.Writer, s *session) error {
	for _, run := range []func(io.Writer, *session) error{runBST, runDllist, runJosephus, runPascal} {
		if err := run(w, s); err != nil {
			return err
		}
	}
	return nil
}
