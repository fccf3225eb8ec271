package summary

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"studentinsight.dev/dashboard/internal/students"
)

// BuildContext renders the selected records as a plain-text table.
//
// A single-student selection becomes a labeled column/value table. A
// multi-student selection always becomes one table with a header row and one
// row per student, in the given order, even when only one of them matched.
func BuildContext(records []students.AggregatedRecord, multi bool) string {
	switch {
	case len(records) == 0:
		return ""
	case multi:
		return multiStudentTable(records)
	default:
		return singleStudentTable(records[0])
	}
}

func singleStudentTable(rec students.AggregatedRecord) string {
	columns := students.Columns()
	values := rec.Values()

	rows := make([][]string, len(columns))
	for i, column := range columns {
		rows[i] = []string{column, values[i]}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("column", "value").
		Rows(rows...).
		String()
}

func multiStudentTable(records []students.AggregatedRecord) string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Values()
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(students.Columns()...).
		Rows(rows...).
		String()
}
