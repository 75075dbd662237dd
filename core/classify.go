package core

import (
	"fmt"

	"github.com/focuslab/focuswatch/schema"
)

// Classify assigns the trailing classification for the extracted samples.
// Fewer than MinSamples samples short-circuits to insufficient_data before
// any cycle search. A detected cycle wins over everything else; otherwise the
// signal is converging, with the message upgraded to a CONVERGED verdict when
// the last StableRun raw samples are all identical. Note that converged is a
// message-level distinction only: the status field stays converging.
func Classify(samples []float64) *schema.AnalysisResult {
	result := &schema.AnalysisResult{
		Status:      schema.InsufficientDataStatus,
		TotalValues: len(samples),
	}
	if len(samples) < MinSamples {
		result.Message = fmt.Sprintf("INSUFFICIENT DATA: only %d focus samples (need %d)", len(samples), MinSamples)
		return result
	}

	transitions := CompressTransitions(samples)
	window := tailWindow(transitions, TailWindow)

	result.UniqueTransitions = len(transitions)
	result.FinalValue = samples[len(samples)-1]

	if cycle := DetectCycle(window); cycle.Detected {
		result.Status = schema.OscillatingStatus
		result.CycleLength = cycle.Length
		result.CyclePattern = cycle.Pattern
		result.Message = fmt.Sprintf("OSCILLATION DETECTED: Cycling through %d values", cycle.Length)
		return result
	}

	result.Status = schema.ConvergingStatus
	result.UniqueInWindow = countUnique(window)
	if len(samples) >= StableRun && allEqual(samples[len(samples)-StableRun:]) {
		result.Stable = true
		result.Message = fmt.Sprintf("CONVERGED: Stable at %s", schema.FormatValue(result.FinalValue))
	} else {
		result.Message = fmt.Sprintf("CONVERGING: Last value %s, %d unique in last %d",
			schema.FormatValue(result.FinalValue), result.UniqueInWindow, TailWindow)
	}
	return result
}
