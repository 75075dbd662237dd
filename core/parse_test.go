package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFocusLiteral(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		coords [3]float64
		ok     bool
	}{
		{"plain integers", `"focus":[1,2,3]`, [3]float64{1, 2, 3}, true},
		{"decimals", `"focus":[0.1,5.25,-0.5]`, [3]float64{0.1, 5.25, -0.5}, true},
		{"scientific notation", `"focus":[1e2,2.5E-1,3e+1]`, [3]float64{100, 0.25, 30}, true},
		{"trailing payload", `"focus":[1,2,3],"iris":2.8}`, [3]float64{1, 2, 3}, true},
		{"missing third coordinate", `"focus":[1,2]`, [3]float64{}, false},
		{"non-numeric coordinate", `"focus":[1,oops,3]`, [3]float64{}, false},
		{"unterminated literal", `"focus":[1,2,3`, [3]float64{}, false},
		{"whitespace not allowed", `"focus":[1, 2, 3]`, [3]float64{}, false},
		{"bare dot", `"focus":[1,.5,3]`, [3]float64{}, false},
		{"dangling dot", `"focus":[1,5.,3]`, [3]float64{}, false},
		{"dangling exponent", `"focus":[1,5e,3]`, [3]float64{}, false},
		{"double negative", `"focus":[1,--5,3]`, [3]float64{}, false},
		{"empty literal", `"focus":[]`, [3]float64{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, reason := parseFocusLiteral(tt.input)
			if tt.ok {
				assert.Empty(t, reason)
				assert.Equal(t, tt.coords, coords)
			} else {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestScanNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start int
		end   int
		ok    bool
	}{
		{"integer", "123,", 0, 3, true},
		{"negative", "-7]", 0, 2, true},
		{"decimal", "3.14]", 0, 4, true},
		{"exponent", "1.5e10,", 0, 7, true},
		{"signed exponent", "2E-3]", 0, 4, true},
		{"mid-string start", "x,42]", 2, 4, true},
		{"no digits", ",1]", 0, 0, false},
		{"lone minus", "-,", 0, 0, false},
		{"dot without fraction", "5.]", 0, 0, false},
		{"exponent without digits", "5e]", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := scanNumber(tt.input, tt.start)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.end, end)
		})
	}
}
