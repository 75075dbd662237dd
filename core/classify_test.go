package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuslab/focuswatch/schema"
)

func TestClassify_InsufficientData(t *testing.T) {
	result := Classify([]float64{1, 2, 3})
	assert.Equal(t, schema.InsufficientDataStatus, result.Status)
	assert.Equal(t, 3, result.TotalValues)
	assert.Equal(t, "INSUFFICIENT DATA: only 3 focus samples (need 10)", result.Message)
	assert.Zero(t, result.UniqueTransitions)
	assert.False(t, result.Stable)
}

func TestClassify_EmptyLog(t *testing.T) {
	result := Classify(nil)
	assert.Equal(t, schema.InsufficientDataStatus, result.Status)
	assert.Equal(t, 0, result.TotalValues)
}

func TestClassify_Oscillating(t *testing.T) {
	samples := repeatPattern([]float64{1, 2, 3}, 4)
	result := Classify(samples)
	assert.Equal(t, schema.OscillatingStatus, result.Status)
	assert.True(t, result.Oscillating())
	assert.Equal(t, 3, result.CycleLength)
	assert.Equal(t, []float64{1, 2, 3}, result.CyclePattern)
	assert.Equal(t, "OSCILLATION DETECTED: Cycling through 3 values", result.Message)
	assert.Equal(t, 12, result.TotalValues)
	assert.Equal(t, 12, result.UniqueTransitions)
	assert.Equal(t, 3.0, result.FinalValue)
}

func TestClassify_OscillationSurvivesDuplicates(t *testing.T) {
	// Raw samples hold each position for a few updates; compression must
	// restore the clean cycle.
	var samples []float64
	for range 4 {
		samples = append(samples, 1, 1, 2, 2, 2, 3)
	}
	result := Classify(samples)
	assert.Equal(t, schema.OscillatingStatus, result.Status)
	assert.Equal(t, 3, result.CycleLength)
	assert.Equal(t, []float64{1, 2, 3}, result.CyclePattern)
}

func TestClassify_Converged(t *testing.T) {
	samples := make([]float64, 25)
	for i := range samples {
		samples[i] = 5.0
	}
	result := Classify(samples)
	assert.Equal(t, schema.ConvergingStatus, result.Status)
	assert.True(t, result.Stable)
	assert.Equal(t, "CONVERGED: Stable at 5.0", result.Message)
	assert.Equal(t, 5.0, result.FinalValue)
	assert.Equal(t, 1, result.UniqueTransitions)
	assert.Equal(t, 1, result.UniqueInWindow)
}

func TestClassify_Converging(t *testing.T) {
	// Settling toward 5.0 but the last 20 raw samples are not yet identical.
	samples := []float64{8, 7, 6.5, 6, 5.8, 5.5, 5.3, 5.2, 5.1, 5.05, 5.0, 5.0, 5.0}
	result := Classify(samples)
	assert.Equal(t, schema.ConvergingStatus, result.Status)
	assert.False(t, result.Stable)
	assert.Equal(t, "CONVERGING: Last value 5.0, 11 unique in last 50", result.Message)
	assert.Equal(t, 11, result.UniqueInWindow)
}

func TestClassify_StableRunBoundary(t *testing.T) {
	// Exactly StableRun identical trailing samples flips the verdict even
	// when earlier samples differ.
	samples := []float64{9, 8}
	for range StableRun {
		samples = append(samples, 5)
	}
	result := Classify(samples)
	assert.Equal(t, schema.ConvergingStatus, result.Status)
	assert.True(t, result.Stable)

	// One non-identical sample inside the trailing run keeps it converging.
	samples[len(samples)-1] = 5.01
	result = Classify(samples)
	assert.False(t, result.Stable)
}

func TestClassify_CycleOnlyInWindow(t *testing.T) {
	// An oscillation that died out long ago, followed by enough distinct
	// transitions to push it outside the tail window, must not be reported.
	samples := repeatPattern([]float64{1, 2, 3}, 4)
	for i := range TailWindow {
		samples = append(samples, 100+float64(i))
	}
	result := Classify(samples)
	assert.Equal(t, schema.ConvergingStatus, result.Status)
	assert.Zero(t, result.CycleLength)
}

func TestClassify_ExactlyMinSamples(t *testing.T) {
	samples := make([]float64, MinSamples)
	for i := range samples {
		samples[i] = float64(i)
	}
	result := Classify(samples)
	require.NotEqual(t, schema.InsufficientDataStatus, result.Status)
	assert.Equal(t, schema.ConvergingStatus, result.Status)
}
