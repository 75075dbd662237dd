// Package core has core logic for sample extraction, transition compression
// and cycle detection over watch logs.
package core

import (
	"context"
	"time"

	"github.com/focuslab/focuswatch/internal/contract"
	"github.com/focuslab/focuswatch/internal/outwriter"
	"github.com/focuslab/focuswatch/schema"
)

// Analysis window constraints. These mirror the hunting signature of the
// focus firmware: a cycle must span at least 3 transitions, periods longer
// than 14 transitions are noise, and only the trailing 50 transitions are
// considered recent enough to matter.
const (
	MinSamples     = 10 // below this the log is unclassifiable
	TailWindow     = 50 // transitions considered for cycle search
	StableRun      = 20 // identical raw samples required for a CONVERGED verdict
	MinCyclePeriod = 3
	MaxCyclePeriod = 14
)

// ExecuteAnalyze runs the full pipeline for a single watch log: extract
// samples, classify the trailing signal, record the run when history tracking
// is enabled, and print the report. The returned result drives the process
// exit code at the command layer.
func ExecuteAnalyze(_ context.Context, cfg *contract.Config, mgr contract.HistoryManager) (*schema.AnalysisResult, error) {
	start := time.Now()

	var runID int64
	store := mgr.GetRunStore()
	if store != nil {
		configParams := map[string]any{
			"log_path":  cfg.LogPath,
			"strict":    cfg.Strict,
			"precision": cfg.Precision,
		}
		var err error
		runID, err = store.BeginRun(start, configParams)
		if err != nil {
			contract.LogWarn("Run history initialization failed", err)
		}
	}

	result, err := AnalyzeLog(cfg.LogPath, cfg.Precision, cfg.Strict)
	if err != nil {
		return nil, err
	}

	// A history write failure degrades to a warning; the analysis itself
	// already succeeded.
	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), result); err != nil {
			contract.LogWarn("Failed to finalize run history", err)
		}
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteAnalysis(result, cfg, time.Since(start)); err != nil {
		return nil, err
	}
	return result, nil
}

// AnalyzeLog extracts samples from the log at path and classifies them.
// It has no side effects and is the entry point used by the MCP handlers.
func AnalyzeLog(path string, precision int, strict bool) (*schema.AnalysisResult, error) {
	samples, err := ExtractSamples(path, precision, strict)
	if err != nil {
		return nil, err
	}
	result := Classify(samples)
	result.LogPath = path
	return result, nil
}
