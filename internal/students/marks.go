package students

import (
	"math"
	"strconv"
	"strings"
)

// maxMark bounds the magnitude of a single mark. Larger values are treated as
// malformed rather than converted.
const maxMark = math.MaxInt32

// ParseMarks extracts the numeric entries of a mark cell.
//
// A cell holds either a single number or a textual sequence such as
// "[12, 15, '18 ']". Entries that do not parse as finite numbers, or whose
// magnitude exceeds maxMark, are dropped.
// The cell is tokenized, never evaluated.
func ParseMarks(cell string) []float64 {
	var marks []float64
	for _, token := range tokenizeMarks(cell) {
		v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxMark {
			continue
		}
		marks = append(marks, v)
	}
	return marks
}

// tokenizeMarks splits a cell on brackets, commas, semicolons and whitespace.
// Quoted entries are kept whole so "'18 '" yields "18 ".
func tokenizeMarks(cell string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(cell); i++ {
		c := cell[i]
		switch c {
		case '\'', '"':
			flush()
			end := strings.IndexByte(cell[i+1:], c)
			if end < 0 {
				tokens = append(tokens, cell[i+1:])
				return tokens
			}
			tokens = append(tokens, cell[i+1:i+1+end])
			i += end + 1
		case '[', ']', '(', ')', ',', ';', ' ', '\t', '\n', '\r':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return tokens
}

// integralMarks keeps the whole-number marks that fit in an int32, in order.
func integralMarks(marks []float64) []int {
	out := make([]int, 0, len(marks))
	for _, m := range marks {
		if m != math.Trunc(m) || m > math.MaxInt32 || m < math.MinInt32 {
			continue
		}
		out = append(out, int(m))
	}
	return out
}
