package core

// CompressTransitions collapses consecutive duplicate samples into a sequence
// of distinct transitions, keeping the first occurrence of each run. The
// output never holds two adjacent equal elements, which also makes the
// function idempotent.
func CompressTransitions(samples []float64) []float64 {
	var transitions []float64
	for _, y := range samples {
		if len(transitions) == 0 || y != transitions[len(transitions)-1] {
			transitions = append(transitions, y)
		}
	}
	return transitions
}

// tailWindow returns the last n elements of seq, or all of seq when shorter.
func tailWindow(seq []float64, n int) []float64 {
	if len(seq) > n {
		return seq[len(seq)-n:]
	}
	return seq
}

// countUnique returns the number of distinct values in seq.
func countUnique(seq []float64) int {
	seen := make(map[float64]struct{}, len(seq))
	for _, v := range seq {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// allEqual reports whether every element of seq equals the first one.
func allEqual(seq []float64) bool {
	for _, v := range seq[1:] {
		if v != seq[0] {
			return false
		}
	}
	return true
}
