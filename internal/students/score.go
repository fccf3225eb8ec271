package students

import (
	"fmt"
	"strconv"
	"strings"
)

// ScorePolicy selects how per-subject marks are reduced during aggregation.
type ScorePolicy string

const (
	// PolicyCollect keeps every whole-number mark in row order.
	PolicyCollect ScorePolicy = "collect"
	// PolicySum stores the total of the whole-number marks.
	PolicySum ScorePolicy = "sum"
	// PolicyMean stores the arithmetic mean of every parseable mark, 0 when none parse.
	PolicyMean ScorePolicy = "mean"
)

// DefaultScorePolicy is used when no policy is configured.
const DefaultScorePolicy = PolicyCollect

// ParseScorePolicy converts a configuration value into a ScorePolicy.
func ParseScorePolicy(s string) (ScorePolicy, error) {
	switch ScorePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultScorePolicy, nil
	case PolicyCollect:
		return PolicyCollect, nil
	case PolicySum:
		return PolicySum, nil
	case PolicyMean:
		return PolicyMean, nil
	default:
		return "", fmt.Errorf("unknown score policy %q (want collect, sum or mean)", s)
	}
}

// Score is the aggregated result for one subject. Marks is populated under
// PolicyCollect, Value under PolicySum and PolicyMean.
type Score struct {
	Policy ScorePolicy
	Marks  []int
	Value  float64
}

func newScore(policy ScorePolicy, marks []float64) Score {
	score := Score{Policy: policy}
	switch policy {
	case PolicySum:
		total := 0
		for _, m := range integralMarks(marks) {
			total += m
		}
		score.Value = float64(total)
	case PolicyMean:
		if len(marks) > 0 {
			var total float64
			for _, m := range marks {
				total += m
			}
			score.Value = total / float64(len(marks))
		}
	default:
		score.Policy = PolicyCollect
		score.Marks = integralMarks(marks)
	}
	return score
}

// Total returns the single value used for charting. Collected marks are
// summed; reduced values are returned unchanged.
func (s Score) Total() float64 {
	if s.Policy != PolicyCollect {
		return s.Value
	}
	total := 0
	for _, m := range s.Marks {
		total += m
	}
	return float64(total)
}

func (s Score) String() string {
	switch s.Policy {
	case PolicySum:
		return strconv.FormatFloat(s.Value, 'f', 0, 64)
	case PolicyMean:
		return strconv.FormatFloat(s.Value, 'f', 2, 64)
	default:
		parts := make([]string, len(s.Marks))
		for i, m := range s.Marks {
			parts[i] = strconv.Itoa(m)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}
