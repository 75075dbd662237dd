// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/focuslab/focuswatch/schema"
)

// HistoryManager defines the interface for managing run history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetRunStore() HistoryStore
}

// HistoryStore defines the interface for tracking analyze runs.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with its completion time and the analysis result.
	EndRun(runID int64, endTime time.Time, result *schema.AnalysisResult) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every stored run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetRecentRuns retrieves up to limit runs, newest first.
	GetRecentRuns(limit int) ([]schema.RunRecord, error)

	// Close closes the underlying connection.
	Close() error
}
