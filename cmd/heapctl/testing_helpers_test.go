package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/heapkit/arena/pascal"
)

// resetGlobals restores every flag variable to its default.
func resetGlobals() {
	arenaLimit = 0
	backingName = "heap"
	verifyRun = false
	showStats = false
	logLevel = ""
	logFile = ""
	logJSON = false

	bstRoot = 1
	bstInsert = []int32{17, 5, 8}
	bstPresent = []int32{5, 17}
	bstAbsent = []int32{0, 3}
	bstThen = []int32{42, 1000, 0}
	bstStrict = false

	dllistValues = []int32{'A', 'B', 'C'}
	dllistLatin1 = false

	josephusN = 0
	josephusP = 2
	josephusOrder = false

	pascalRows = pascal.DefaultRows
	pascalFilled = "*"
	pascalEmpty = "."
}

// runWithSession resets flags, lets setup adjust them, and runs fn on a
// fresh session, returning what fn wrote.
func runWithSession(t *testing.T, setup func(), fn func(w *bytes.Buffer, s *session) error) (string, error) {
	t.Helper()
	resetGlobals()
	t.Cleanup(resetGlobals)
	if setup != nil {
		setup()
	}
	var out, stats bytes.Buffer
	err := withSession(&stats, func(s *session) error { return fn(&out, s) })
	return out.String() + stats.String(), err
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, want []string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(output, s) {
			t.Errorf("output missing %q\noutput:\n%s", s, output)
		}
	}
}
