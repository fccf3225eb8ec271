package students

import (
	"strconv"
	"strings"
)

type accumulator struct {
	marks            [len(Subjects)][]float64
	productivityFlag string
	productivityRate int
	emotionalFactors []string
}

// Aggregate groups raw rows by user id and returns one record per student in
// first-appearance order.
//
// Marks are reduced according to policy. Productivity flag and rate take the
// last non-missing value in row order; emotional factors are the non-missing
// values joined by a single space.
func Aggregate(records []RawRecord, policy ScorePolicy) []AggregatedRecord {
	var order []string
	groups := make(map[string]*accumulator)

	for _, rec := range records {
		acc, ok := groups[rec.UserID]
		if !ok {
			acc = &accumulator{}
			groups[rec.UserID] = acc
			order = append(order, rec.UserID)
		}

		for _, subject := range Subjects {
			cell := rec.Marks[subject]
			if cell.IsMissing() {
				continue
			}
			acc.marks[subject] = append(acc.marks[subject], ParseMarks(cell.Value)...)
		}

		if !rec.ProductivityFlag.IsMissing() {
			acc.productivityFlag = strings.TrimSpace(rec.ProductivityFlag.Value)
		}
		if rate, ok := parseRate(rec.ProductivityRate); ok {
			acc.productivityRate = rate
		}
		if !rec.EmotionalFactors.IsMissing() {
			acc.emotionalFactors = append(acc.emotionalFactors, strings.TrimSpace(rec.EmotionalFactors.Value))
		}
	}

	aggregated := make([]AggregatedRecord, 0, len(order))
	for _, userID := range order {
		acc := groups[userID]
		out := AggregatedRecord{
			UserID:           userID,
			ProductivityFlag: acc.productivityFlag,
			ProductivityRate: acc.productivityRate,
			EmotionalFactors: strings.Join(acc.emotionalFactors, " "),
		}
		for _, subject := range Subjects {
			out.Scores[subject] = newScore(policy, acc.marks[subject])
		}
		aggregated = append(aggregated, out)
	}

	return aggregated
}

// parseRate accepts integral rates, including "7.0" style exports.
func parseRate(cell Cell) (int, bool) {
	if cell.IsMissing() {
		return 0, false
	}
	v := strings.TrimSpace(cell.Value)
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
