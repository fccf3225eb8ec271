package students

import (
	"fmt"
	"strings"
)

// Subject identifies one of the three examined subjects.
type Subject int

const (
	Physics Subject = iota
	Chemistry
	Mathematics
)

// Subjects lists every subject in display order.
var Subjects = [...]Subject{Physics, Chemistry, Mathematics}

func (s Subject) String() string {
	switch s {
	case Physics:
		return "Physics"
	case Chemistry:
		return "Chemistry"
	case Mathematics:
		return "Mathematics"
	default:
		return fmt.Sprintf("Subject(%d)", int(s))
	}
}

// Column returns the dataset column holding the marks for this subject.
func (s Subject) Column() string {
	return fmt.Sprintf("Marks_got_in_%s_chapters", strings.ToLower(s.String()))
}

// Dataset column names, in the order used when rendering records.
const (
	ColumnUserID           = "user_id"
	ColumnProductivityFlag = "productivity_yes_no"
	ColumnProductivityRate = "productivity_rate"
	ColumnEmotionalFactors = "emotional_factors"
)

// Columns returns the dataset columns in rendering order.
func Columns() []string {
	return []string{
		ColumnUserID,
		Physics.Column(),
		Chemistry.Column(),
		Mathematics.Column(),
		ColumnProductivityFlag,
		ColumnProductivityRate,
		ColumnEmotionalFactors,
	}
}

// Cell is a single dataset value that may be absent.
type Cell struct {
	Value   string
	Present bool
}

// Value wraps a present cell value.
func Value(v string) Cell {
	return Cell{Value: v, Present: true}
}

// Missing returns an absent cell.
func Missing() Cell {
	return Cell{}
}

// IsMissing reports whether the cell is absent or blank.
func (c Cell) IsMissing() bool {
	return !c.Present || strings.TrimSpace(c.Value) == ""
}

// RawRecord is one (student, question) row of the source dataset.
type RawRecord struct {
	UserID           string
	Marks            [len(Subjects)]Cell
	ProductivityFlag Cell
	ProductivityRate Cell
	EmotionalFactors Cell
}

// AggregatedRecord summarizes every raw row of one student.
type AggregatedRecord struct {
	UserID           string
	Scores           [len(Subjects)]Score
	ProductivityFlag string
	// ProductivityRate is 0 when no row carried a parseable rate; valid rates are 1-10.
	ProductivityRate int
	EmotionalFactors string
}

// Score returns the aggregated score for a subject.
func (r AggregatedRecord) Score(s Subject) Score {
	return r.Scores[s]
}

// Values returns the record as display strings in Columns() order.
func (r AggregatedRecord) Values() []string {
	rate := ""
	if r.ProductivityRate != 0 {
		rate = fmt.Sprintf("%d", r.ProductivityRate)
	}
	return []string{
		r.UserID,
		r.Scores[Physics].String(),
		r.Scores[Chemistry].String(),
		r.Scores[Mathematics].String(),
		r.ProductivityFlag,
		rate,
		r.EmotionalFactors,
	}
}

// UserIDs returns the distinct user ids of the raw dataset in first-appearance order.
func UserIDs(records []RawRecord) []string {
	seen := make(map[string]bool, len(records))
	var ids []string
	for _, rec := range records {
		if seen[rec.UserID] {
			continue
		}
		seen[rec.UserID] = true
		ids = append(ids, rec.UserID)
	}
	return ids
}

// Find returns the aggregated record for the given user id.
func Find(records []AggregatedRecord, userID string) (AggregatedRecord, bool) {
	for _, rec := range records {
		if rec.UserID == userID {
			return rec, true
		}
	}
	return AggregatedRecord{}, false
}
