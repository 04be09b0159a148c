package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/bst"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/spf13/cobra"
)

var (
	bstRoot    int32
	bstInsert  []int32
	bstPresent []int32
	bstAbsent  []int32
	bstThen    []int32
	bstStrict  bool
)

func init() {
	cmd := newBSTCmd()
	cmd.Flags().Int32Var(&bstRoot, "root", 1, "Value of the root node")
	cmd.Flags().Int32SliceVar(&bstInsert, "insert", []int32{17, 5, 8}, "Values inserted before the first print")
	cmd.Flags().Int32SliceVar(&bstPresent, "present", []int32{5, 17}, "Values that must be found for the ok line")
	cmd.Flags().Int32SliceVar(&bstAbsent, "absent", []int32{0, 3}, "Values that must be missing for the ok line")
	cmd.Flags().Int32SliceVar(&bstThen, "then", []int32{42, 1000, 0}, "Values inserted before the second print")
	cmd.Flags().BoolVar(&bstStrict, "strict", false, "Stop a lookup at an empty left slot instead of searching right")
	rootCmd.AddCommand(cmd)
}

func newBSTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bst",
		Short: "Build, query and print a binary search tree",
		Long: `The bst command builds a tree from --root and --insert, prints it as
nested parentheses, prints "ok" when every --present value is found and no
--absent value is, then inserts --then and prints the tree again.

Example:
  heapctl bst
  heapctl bst --root 50 --insert 30,70 --then 20,80 --present 30 --absent 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(os.Stderr, func(s *session) error {
				return runBST(os.Stdout, s)
			})
		},
	}
}

func runBST(w io.Writer, s *session) error {
	mode := bst.ContainsFaithful
	if bstStrict {
		mode = bst.ContainsStrict
	}
	tr := bst.New(s.a, s.ba, bst.WithContainsMode(mode))

	root, err := tr.Make(bstRoot)
	if err != nil {
		return err
	}
	if err := insertAll(tr, root, bstInsert); err != nil {
		return err
	}
	if err := printTree(w, s, tr, root); err != nil {
		return err
	}

	ok := true
	for _, x := range bstPresent {
		found, err := tr.Contains(root, x)
		if err != nil {
			return err
		}
		ok = ok && found
	}
	for _, x := range bstAbsent {
		found, err := tr.Contains(root, x)
		if err != nil {
			return err
		}
		ok = ok && !found
	}
	if ok {
		if _, err := fmt.Fprintln(w, "ok"); err != nil {
			return err
		}
	}

	if err := insertAll(tr, root, bstThen); err != nil {
		return err
	}
	return printTree(w, s, tr, root)
}

func insertAll(tr *bst.Tree, root arena.Ref, xs []int32) error {
	for _, x := range xs {
		if err := tr.Insert(root, x); err != nil {
			return fmt.Errorf("insert %d: %w", x, err)
		}
	}
	return nil
}

func printTree(w io.Writer, s *session, tr *bst.Tree, root arena.Ref) error {
	if verifyRun {
		if _, err := verify.Tree(s.a, root); err != nil {
			return fmt.Errorf("tree check failed: %w", err)
		}
	}
	if err := tr.Print(w, root); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
