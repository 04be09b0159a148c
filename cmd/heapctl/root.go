package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	arenaLimit  int
	backingName string
	verifyRun   bool
	showStats   bool
	logLevel    string
	logFile     string
	logJSON     bool

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Run pointer-structure programs over a bump-allocated arena",
	Long: `heapctl runs small programs built on one append-only arena: a binary
search tree, a circular doubly-linked list, the Josephus elimination game
and Pascal's triangle modulo 7. With no flags each command prints exactly
what the classic program prints.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, enabled, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		closer, err := logger.Init(logger.Options{
			Enabled: enabled,
			File:    logFile,
			JSON:    logJSON,
			Level:   level,
		})
		if err != nil {
			return err
		}
		closeLog = closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&arenaLimit, "arena-limit", 0, "Cap the arena at this many bytes (0 = uncapped)")
	rootCmd.PersistentFlags().StringVar(&backingName, "backing", "heap", "Arena memory: heap or mmap")
	rootCmd.PersistentFlags().BoolVar(&verifyRun, "verify", false, "Check structural invariants after each step")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "Print allocator statistics to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default off)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
