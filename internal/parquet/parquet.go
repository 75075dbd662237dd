// Package parquet provides data structures and functions for exporting
// focuswatch run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/focuslab/focuswatch/schema"
)

// Run represents a single focuswatch analyze run with its result.
// This struct maps to the focuswatch_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// LogPath is the watch log that was analyzed
	LogPath string `parquet:"log_path,snappy"`

	// Status is the verdict for the run (oscillating, converging, insufficient_data)
	Status string `parquet:"status,snappy"`

	// TotalValues is the number of focus samples extracted from the log
	TotalValues int32 `parquet:"total_values,snappy"`

	// UniqueTransitions is the number of distinct consecutive transitions
	UniqueTransitions int32 `parquet:"unique_transitions,snappy"`

	// FinalValue is the last focus value observed
	FinalValue float64 `parquet:"final_value,snappy"`

	// CycleLength is the detected cycle period, or zero when no cycle was found
	CycleLength int32 `parquet:"cycle_length,snappy"`

	// CyclePattern contains the JSON-encoded repeating values (nullable)
	CyclePattern *string `parquet:"cycle_pattern,optional,snappy"`

	// Message is the human-readable verdict line
	Message string `parquet:"message,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns returns sample run data for demos and experimentation.
func MockFetchRuns() []Run {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(340 * time.Millisecond)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	pattern1 := `[2.5,3.1,2.8]`
	configParams1 := `{"precision":2,"strict":false}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(120 * time.Millisecond)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"precision":3,"strict":true}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []Run{
		{
			RunID:             1,
			StartTime:         startTime1,
			EndTime:           &endTime1,
			RunDurationMs:     &durationMs1,
			LogPath:           "rig-a/camera.log",
			Status:            string(schema.OscillatingStatus),
			TotalValues:       4820,
			UniqueTransitions: 310,
			FinalValue:        2.8,
			CycleLength:       3,
			CyclePattern:      &pattern1,
			Message:           "OSCILLATION DETECTED: Cycling through 3 values",
			ConfigParams:      &configParams1,
		},
		{
			RunID:             2,
			StartTime:         startTime2,
			EndTime:           &endTime2,
			RunDurationMs:     &durationMs2,
			LogPath:           "rig-b/camera.log",
			Status:            string(schema.ConvergingStatus),
			TotalValues:       1200,
			UniqueTransitions: 45,
			FinalValue:        5.0,
			Message:           "CONVERGED: Stable at 5.0",
			ConfigParams:      &configParams2,
		},
		{
			RunID:     3,
			StartTime: startTime3,
			LogPath:   "rig-c/camera.log",
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:             record.RunID,
			StartTime:         record.StartTime,
			EndTime:           record.EndTime,
			RunDurationMs:     record.RunDurationMs,
			LogPath:           record.LogPath,
			Status:            record.Status,
			TotalValues:       record.TotalValues,
			UniqueTransitions: record.UniqueTransitions,
			FinalValue:        record.FinalValue,
			CycleLength:       record.CycleLength,
			CyclePattern:      record.CyclePattern,
			Message:           record.Message,
			ConfigParams:      record.ConfigParams,
		}
	}
	return result
}
