// Package schema has models, constants and typed enums for all parts of focuswatch.
package schema

// AnalysisResult represents the outcome of analyzing a single watch log.
// It carries the sample/transition counts, the trailing classification, and,
// when a cycle was detected, the period and the repeating pattern itself.
type AnalysisResult struct {
	Status            Status    `json:"status"`                     // insufficient_data, oscillating or converging
	LogPath           string    `json:"log_path"`                   // Path to the analyzed watch log
	TotalValues       int       `json:"total_values"`               // Number of focus samples extracted
	UniqueTransitions int       `json:"unique_transitions"`         // Length of the compressed transition sequence
	FinalValue        float64   `json:"final_value"`                // Last extracted sample
	CycleLength       int       `json:"cycle_length,omitempty"`     // Detected period length, 0 when no cycle
	CyclePattern      []float64 `json:"cycle_pattern,omitempty"`    // The repeating block, in order
	UniqueInWindow    int       `json:"unique_in_window,omitempty"` // Distinct transition values in the trailing window
	Stable            bool      `json:"stable"`                     // True when the trailing raw samples are flat
	Message           string    `json:"message"`                    // Human-readable classification verdict
}

// Oscillating reports whether the log was classified as a hunting loop.
func (r *AnalysisResult) Oscillating() bool {
	return r.Status == OscillatingStatus
}
