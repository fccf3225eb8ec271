package models

import "studentinsight.dev/dashboard/internal/students"

// SubjectScoreModel is the JSON shape of one aggregated subject score.
type SubjectScoreModel struct {
	Subject string  `json:"subject"`
	Policy  string  `json:"policy"`
	Marks   []int   `json:"marks,omitempty"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// StudentEntry is the JSON shape of an aggregated student record.
type StudentEntry struct {
	UserID           string              `json:"userId"`
	Scores           []SubjectScoreModel `json:"scores"`
	ProductivityFlag string              `json:"productivityFlag"`
	ProductivityRate int                 `json:"productivityRate,omitempty"`
	EmotionalFactors string              `json:"emotionalFactors"`
}

// NewStudentEntry converts an aggregated record into its API model. Value
// always carries the charted total so clients never reduce marks themselves.
func NewStudentEntry(rec students.AggregatedRecord) StudentEntry {
	entry := StudentEntry{
		UserID:           rec.UserID,
		Scores:           make([]SubjectScoreModel, 0, len(students.Subjects)),
		ProductivityFlag: rec.ProductivityFlag,
		ProductivityRate: rec.ProductivityRate,
		EmotionalFactors: rec.EmotionalFactors,
	}

	for _, subject := range students.Subjects {
		score := rec.Score(subject)
		entry.Scores = append(entry.Scores, SubjectScoreModel{
			Subject: subject.String(),
			Policy:  string(score.Policy),
			Marks:   score.Marks,
			Value:   score.Total(),
			Display: score.String(),
		})
	}

	return entry
}
