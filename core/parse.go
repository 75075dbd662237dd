package core

import (
	"fmt"
	"strconv"
)

// The focus field grammar, as emitted by the watch firmware:
//
//	focus-field = '"focus"' ':' '[' number ',' number ',' number ']'
//	number      = ['-'] digits ['.' digits] [('e'|'E') ['+'|'-'] digits]
//
// No whitespace is allowed inside the literal.

// parseFocusLiteral parses a focus array literal. The input must start at
// the focusMarker. It returns the three coordinates, or a non-empty reason
// when the literal does not satisfy the grammar.
func parseFocusLiteral(s string) (coords [3]float64, reason string) {
	i := len(focusMarker)
	for n := range 3 {
		end, ok := scanNumber(s, i)
		if !ok {
			return coords, fmt.Sprintf("coordinate %d is not a number", n+1)
		}
		v, err := strconv.ParseFloat(s[i:end], 64)
		if err != nil {
			return coords, fmt.Sprintf("coordinate %d: %v", n+1, err)
		}
		coords[n] = v
		i = end
		if n < 2 {
			if i >= len(s) || s[i] != ',' {
				return coords, fmt.Sprintf("expected ',' after coordinate %d", n+1)
			}
			i++
		}
	}
	if i >= len(s) || s[i] != ']' {
		return coords, "unterminated array literal"
	}
	return coords, ""
}

// scanNumber advances over one number token starting at start and returns the
// end offset. It only validates the shape; ParseFloat handles the value.
func scanNumber(s string, start int) (int, bool) {
	i := start
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if digits == 0 {
		return start, false
	}
	if i < len(s) && s[i] == '.' {
		i++
		frac := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			frac++
		}
		if frac == 0 {
			return start, false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return start, false
		}
	}
	return i, true
}
