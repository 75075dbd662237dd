package schema

import "time"

// RunRecord represents a row from the focuswatch_runs table.
type RunRecord struct {
	RunID             int64
	StartTime         time.Time
	EndTime           *time.Time
	RunDurationMs     *int32
	LogPath           string
	Status            string
	TotalValues       int32
	UniqueTransitions int32
	FinalValue        float64
	CycleLength       int32
	CyclePattern      *string // JSON-encoded []float64, nil when no cycle
	Message           string
	ConfigParams      *string // JSON-encoded analyze configuration
}
