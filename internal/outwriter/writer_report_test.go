package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuslab/focuswatch/schema"
)

func oscillatingResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Status:            schema.OscillatingStatus,
		LogPath:           "camera.log",
		TotalValues:       120,
		UniqueTransitions: 60,
		FinalValue:        3,
		CycleLength:       3,
		CyclePattern:      []float64{1, 2, 3},
		UniqueInWindow:    3,
		Message:           "OSCILLATION DETECTED: Cycling through 3 values",
	}
}

func TestWriteJSONResultsForAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForAnalysis(&buf, oscillatingResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "oscillating", decoded["status"])
	assert.Equal(t, "camera.log", decoded["log_path"])
	assert.Equal(t, float64(120), decoded["total_values"])
	assert.Equal(t, float64(3), decoded["cycle_length"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, decoded["cycle_pattern"])
}

func TestWriteCSVResultsForAnalysis(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForAnalysis(w, oscillatingResult()))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, []string{
		"log_path", "status", "total_values", "unique_transitions",
		"final_value", "cycle_length", "cycle_pattern", "stable", "message",
	}, header)

	row := records[1]
	assert.Equal(t, "camera.log", row[0])
	assert.Equal(t, "oscillating", row[1])
	assert.Equal(t, "120", row[2])
	assert.Equal(t, "60", row[3])
	assert.Equal(t, "3.0", row[4])
	assert.Equal(t, "3", row[5])
	assert.Equal(t, "1.0|2.0|3.0", row[6])
	assert.Equal(t, "false", row[7])
}

func TestWriteCSVResultsForAnalysis_NoCycle(t *testing.T) {
	result := &schema.AnalysisResult{
		Status:      schema.ConvergingStatus,
		LogPath:     "camera.log",
		TotalValues: 25,
		FinalValue:  5,
		Stable:      true,
		Message:     "CONVERGED: Stable at 5.0",
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForAnalysis(w, result))
	w.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	row := records[1]
	assert.Equal(t, "converging", row[1])
	assert.Equal(t, "5.0", row[4])
	assert.Equal(t, "0", row[5])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "true", row[7])
}
