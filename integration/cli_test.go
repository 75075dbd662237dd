//go:build basic

// Package integration contains integration tests for focuswatch.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runFocuswatch runs the shared binary and returns stdout plus the process exit code.
func runFocuswatch(t *testing.T, args ...string) (string, int) {
	t.Helper()
	focuswatchPath := getFocuswatchBinary()
	cmd := exec.Command(focuswatchPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("command failed to start: %v\nstderr: %s", err, stderr.String())
		}
		return stdout.String(), exitErr.ExitCode()
	}
	return stdout.String(), 0
}

// TestAnalyzeExitCodes verifies that the analyze command maps each
// classification to its documented exit code.
func TestAnalyzeExitCodes(t *testing.T) {
	dir := t.TempDir()

	t.Run("oscillating exits 1", func(t *testing.T) {
		logPath := writeWatchLog(t, dir, "hunting.log", oscillatingSamples(10))
		out, code := runFocuswatch(t, "analyze", logPath)
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "OSCILLATION DETECTED")
	})

	t.Run("converged exits 0", func(t *testing.T) {
		logPath := writeWatchLog(t, dir, "stable.log", convergedSamples(25))
		out, code := runFocuswatch(t, "analyze", logPath)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "CONVERGED")
	})

	t.Run("insufficient data exits 2", func(t *testing.T) {
		logPath := writeWatchLog(t, dir, "short.log", []float64{1.0, 2.0})
		out, code := runFocuswatch(t, "analyze", logPath)
		assert.Equal(t, 2, code)
		assert.Contains(t, out, "INSUFFICIENT DATA")
	})
}

// TestAnalyzeJSONOutput verifies the machine-readable output mode end to end.
func TestAnalyzeJSONOutput(t *testing.T) {
	dir := t.TempDir()
	logPath := writeWatchLog(t, dir, "hunting.log", oscillatingSamples(10))

	out, code := runFocuswatch(t, "analyze", logPath, "--output", "json")
	assert.Equal(t, 1, code)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "oscillating", result["status"])
	assert.Equal(t, float64(3), result["cycle_length"])
	assert.Equal(t, logPath, result["log_path"])
}

// TestHistoryWithSQLite runs a full analyze/status/runs/clear round trip
// against a file-backed SQLite history store.
func TestHistoryWithSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	logPath := writeWatchLog(t, dir, "stable.log", convergedSamples(25))

	_, code := runFocuswatch(t, "analyze", logPath,
		"--history-backend", "sqlite", "--history-db-connect", dbPath)
	assert.Equal(t, 0, code)

	out, code := runFocuswatch(t, "history", "status",
		"--history-backend", "sqlite", "--history-db-connect", dbPath)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Total Runs: 1")

	out, code = runFocuswatch(t, "history", "runs",
		"--history-backend", "sqlite", "--history-db-connect", dbPath)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "stable.log")

	_, code = runFocuswatch(t, "history", "clear",
		"--history-backend", "sqlite", "--history-db-connect", dbPath)
	assert.Equal(t, 0, code)

	out, code = runFocuswatch(t, "history", "status",
		"--history-backend", "sqlite", "--history-db-connect", dbPath)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Total Runs: 0")
}
