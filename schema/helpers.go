package schema

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a focus sample the way the diagnostic reports always
// have: whole numbers keep one decimal (5 -> "5.0"), everything else uses the
// shortest exact representation.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatPattern joins a cycle pattern with the given separator.
func FormatPattern(pattern []float64, sep string) string {
	parts := make([]string, len(pattern))
	for i, v := range pattern {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, sep)
}
