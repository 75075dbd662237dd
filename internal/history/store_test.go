package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuslab/focuswatch/schema"
)

func newSQLiteStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func sampleResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Status:            schema.OscillatingStatus,
		LogPath:           "camera.log",
		TotalValues:       120,
		UniqueTransitions: 60,
		FinalValue:        3.0,
		CycleLength:       3,
		CyclePattern:      []float64{1, 2, 3},
		Message:           "OSCILLATION DETECTED: Cycling through 3 values",
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.EndRun(1, time.Now(), sampleResult()))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestRunStore_BeginEndRun(t *testing.T) {
	store := newSQLiteStore(t)

	startTime := time.Now().Add(-100 * time.Millisecond)
	configParams := map[string]any{
		"log_path":  "camera.log",
		"strict":    false,
		"precision": 2,
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	endTime := time.Now()
	require.NoError(t, store.EndRun(runID, endTime, sampleResult()))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "camera.log", run.LogPath)
	assert.Equal(t, string(schema.OscillatingStatus), run.Status)
	assert.Equal(t, int32(120), run.TotalValues)
	assert.Equal(t, int32(60), run.UniqueTransitions)
	assert.Equal(t, 3.0, run.FinalValue)
	assert.Equal(t, int32(3), run.CycleLength)
	require.NotNil(t, run.CyclePattern)
	assert.JSONEq(t, "[1,2,3]", *run.CyclePattern)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(100))
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"precision":2`)
}

func TestRunStore_UnfinishedRun(t *testing.T) {
	store := newSQLiteStore(t)

	// A run that began but never ended leaves NULL result columns; scanning
	// must still work.
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "unfinished"})
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Nil(t, run.EndTime)
	assert.Nil(t, run.RunDurationMs)
	assert.Nil(t, run.CyclePattern)
	assert.Empty(t, run.LogPath)
	assert.Empty(t, run.Status)
	assert.Zero(t, run.TotalValues)
	assert.Zero(t, run.FinalValue)
}

func TestRunStore_GetRecentRuns(t *testing.T) {
	store := newSQLiteStore(t)

	var runIDs []int64
	for i := range 5 {
		id, err := store.BeginRun(time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		require.NoError(t, store.EndRun(id, time.Now(), sampleResult()))
		runIDs = append(runIDs, id)
	}

	// Newest first, capped at limit
	recent, err := store.GetRecentRuns(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, runIDs[4], recent[0].RunID)
	assert.Equal(t, runIDs[3], recent[1].RunID)
	assert.Equal(t, runIDs[2], recent[2].RunID)

	// All runs, oldest first
	all, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, runIDs[0], all[0].RunID)
	assert.Equal(t, runIDs[4], all[4].RunID)
}

func TestRunStore_GetStatus(t *testing.T) {
	store := newSQLiteStore(t)

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, int64(0), status.TotalRuns)

	// Two runs spaced apart
	first := time.Now().Add(-time.Hour)
	id1, err := store.BeginRun(first, nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(id1, first.Add(time.Second), sampleResult()))

	second := time.Now()
	id2, err := store.BeginRun(second, nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(id2, second.Add(time.Second), sampleResult()))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.WithinDuration(t, second, status.LastRunTime, time.Second)
	assert.WithinDuration(t, first, status.OldestRunTime, time.Second)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
}

func TestRunStore_NoPatternRun(t *testing.T) {
	store := newSQLiteStore(t)

	result := &schema.AnalysisResult{
		Status:            schema.ConvergingStatus,
		LogPath:           "camera.log",
		TotalValues:       25,
		UniqueTransitions: 1,
		FinalValue:        5.0,
		Stable:            true,
		Message:           "CONVERGED: Stable at 5.0",
	}

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(runID, time.Now(), result))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].CyclePattern)
	assert.Equal(t, int32(0), runs[0].CycleLength)
	assert.Equal(t, 5.0, runs[0].FinalValue)
}
