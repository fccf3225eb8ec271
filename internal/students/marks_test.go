package students

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarks(t *testing.T) {
	testCases := []struct {
		name string
		cell string
		want []float64
	}{
		{name: "single number", cell: "12", want: []float64{12}},
		{name: "whitespace padded", cell: "  18 ", want: []float64{18}},
		{name: "bracketed list", cell: "[12, 15, 18]", want: []float64{12, 15, 18}},
		{name: "quoted padded entry", cell: "[12, 15, '18 ']", want: []float64{12, 15, 18}},
		{name: "double quoted entries", cell: `["7", "8"]`, want: []float64{7, 8}},
		{name: "space separated", cell: "[4 5 6]", want: []float64{4, 5, 6}},
		{name: "nested brackets flattened", cell: "[[1, 2], [3]]", want: []float64{1, 2, 3}},
		{name: "malformed entry dropped", cell: "['abc', 10]", want: []float64{10}},
		{name: "decimal kept", cell: "12.5", want: []float64{12.5}},
		{name: "nan and inf dropped", cell: "[NaN, inf, 3]", want: []float64{3}},
		{name: "oversized entry dropped", cell: "[1e20, 5]", want: []float64{5}},
		{name: "oversized negative dropped", cell: "-3e12", want: nil},
		{name: "unterminated quote", cell: "[1, '2", want: []float64{1, 2}},
		{name: "empty", cell: "", want: nil},
		{name: "empty list", cell: "[]", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseMarks(tc.cell))
		})
	}
}

func TestParseMarksNeverEvaluatesExpressions(t *testing.T) {
	assert.Empty(t, ParseMarks("__import__('os').system('true')"))
	assert.Equal(t, []float64{2}, ParseMarks("[1+1, 2]"))
}

func TestIntegralMarks(t *testing.T) {
	assert.Equal(t, []int{12, 18}, integralMarks([]float64{12, 12.5, 18.0}))
	assert.Empty(t, integralMarks(nil))
	assert.Equal(t, []int{5}, integralMarks([]float64{1e20, 5, -1e20}))
}
