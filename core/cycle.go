package core

// CycleResult holds the outcome of the bounded-period cycle search.
type CycleResult struct {
	Detected bool
	Length   int
	Pattern  []float64
}

// DetectCycle scans candidate period lengths over the transition window,
// smallest first, and declares a cycle when the trailing block of that length
// repeats immediately at least twice more before it. Requiring three total
// occurrences guards against coincidental short-run repeats, and stopping at
// the smallest period ensures a period-3 oscillation is never reported as
// period-6.
func DetectCycle(window []float64) CycleResult {
	for length := MinCyclePeriod; length <= MaxCyclePeriod; length++ {
		if len(window) < length*3 {
			continue
		}
		pattern := window[len(window)-length:]
		prev := window[len(window)-2*length : len(window)-length]
		if !equalBlocks(pattern, prev) {
			continue
		}
		// The 3*length guard above means prev2 always exists here.
		prev2 := window[len(window)-3*length : len(window)-2*length]
		if !equalBlocks(pattern, prev2) {
			continue
		}
		return CycleResult{
			Detected: true,
			Length:   length,
			Pattern:  append([]float64(nil), pattern...),
		}
	}
	return CycleResult{}
}

// equalBlocks compares two equally sized transition blocks element-wise.
func equalBlocks(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
