package students

import (
	"fmt"
	"math"
)

// Slice is one labeled value of a pie chart.
type Slice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// PieChart holds the per-subject distribution of one student.
type PieChart struct {
	UserID string  `json:"userId"`
	Title  string  `json:"title"`
	Total  float64 `json:"total"`
	Slices []Slice `json:"slices"`
}

// ChartTotals computes the per-subject values of a student for proportional display.
// Each score is reduced once via Score.Total. Negative subject totals are
// clamped to zero since a pie slice cannot be negative. A zero grand total
// yields zero percentages.
func ChartTotals(rec AggregatedRecord) PieChart {
	chart := PieChart{
		UserID: rec.UserID,
		Title:  fmt.Sprintf("Performance Distribution for %s", rec.UserID),
		Slices: make([]Slice, 0, len(Subjects)),
	}

	for _, subject := range Subjects {
		value := math.Max(rec.Scores[subject].Total(), 0)
		chart.Total += value
		chart.Slices = append(chart.Slices, Slice{Label: subject.String(), Value: value})
	}

	if chart.Total > 0 {
		for i := range chart.Slices {
			chart.Slices[i].Percent = chart.Slices[i].Value / chart.Total * 100
		}
	}

	return chart
}
