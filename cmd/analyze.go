package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/focuslab/focuswatch/core"
	"github.com/focuslab/focuswatch/internal/contract"
	"github.com/focuslab/focuswatch/internal/history"
)

// analyzeCmd performs oscillation analysis on a single watch log.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <log-path>",
	Short: "Analyze a watch log for focus oscillation.",
	Long: `Parse a camera watch log, extract the focus position samples and
classify the trailing signal.

The verdict is one of:
- oscillating       - the focus motor is hunting through a repeating cycle
- converging        - the focus value is settling (or already stable)
- insufficient_data - too few samples to say anything

The exit code mirrors the verdict so the command can gate scripts:
  0 - converging (including fully stable)
  1 - oscillating
  2 - insufficient data

Examples:
  # Analyze a log and print a text report
  focuswatch analyze camera.log

  # Machine-readable output for pipelines
  focuswatch analyze camera.log --output json

  # Reject malformed focus records instead of skipping them
  focuswatch analyze camera.log --strict

  # Track every run in a local SQLite database
  focuswatch analyze camera.log --history-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.ExecuteAnalyze(rootCtx, cfg, history.Manager)
		if err != nil {
			history.CloseStores()
			contract.LogFatal("Cannot analyze watch log", err)
		}
		history.CloseStores()
		if err := stopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
		os.Exit(result.Status.ExitCode())
	},
}
