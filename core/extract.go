package core

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"
)

// focusMarker anchors a focus position record within a log line.
const focusMarker = `"focus":[`

// ParseError describes a focus field that failed the array-literal grammar.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: malformed focus literal: %s", e.Line, e.Reason)
}

// ExtractSamples reads the watch log at path and collects the Y coordinate of
// every focus position record, rounded to the given number of decimals.
// Lines without a focus field never contribute a sample. A line whose focus
// literal fails the grammar is skipped as well, unless strict is set, in
// which case the scan stops with a *ParseError carrying the line number.
func ExtractSamples(path string, precision int, strict bool) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open watch log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var samples []float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		idx := strings.Index(line, focusMarker)
		if idx < 0 {
			continue
		}
		coords, reason := parseFocusLiteral(line[idx:])
		if reason != "" {
			if strict {
				return nil, &ParseError{Line: lineNo, Reason: reason}
			}
			continue
		}
		samples = append(samples, roundTo(coords[1], precision))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read watch log: %w", err)
	}
	return samples, nil
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
