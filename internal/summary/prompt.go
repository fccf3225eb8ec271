package summary

import (
	"bytes"
	"fmt"
	"text/template"

	"studentinsight.dev/dashboard/internal/students"
)

const columnSchema = `Columns:
- user_id: the student's identifier.
- Marks_got_in_physics_chapters, Marks_got_in_chemistry_chapters, Marks_got_in_mathematics_chapters: {{.Scores}}
- productivity_yes_no: whether the student considers themselves productive (Yes/No).
- productivity_rate: self-reported productivity on a scale from 1 to 10 (empty when unknown).
- emotional_factors: non-academic issues reported for the student (empty when none).`

var singleStudentTemplate = template.Must(template.New("single").Parse(
	`You are an academic mentor reviewing the exam performance of one student.

` + columnSchema + `

Student data:
{{.Context}}

Write a short narrative covering this student's strengths, opportunities and challenges across physics,
chemistry and mathematics, taking their productivity and emotional factors into account.
Finish with a list of concrete, actionable suggestions the student can follow to improve.
`))

var multiStudentTemplate = template.Must(template.New("multi").Parse(
	`You are an academic mentor reviewing the exam performance of {{.Count}} students.

` + columnSchema + `

Student data, one row per student:
{{.Context}}

For each student, identified by user_id, write a short narrative covering their strengths, opportunities and
challenges across physics, chemistry and mathematics, taking productivity and emotional factors into account,
followed by concrete, actionable suggestions to improve. Keep each student's section separate.
`))

type promptData struct {
	Count   int
	Scores  string
	Context string
}

// BuildPrompt embeds the rendered context into the single-student or
// multi-student template. multi selects the template independently of how
// many records matched.
func BuildPrompt(records []students.AggregatedRecord, multi bool) (string, error) {
	policy := students.DefaultScorePolicy
	if len(records) > 0 {
		policy = records[0].Score(students.Physics).Policy
	}

	data := promptData{
		Count:   len(records),
		Scores:  scoreDescription(policy),
		Context: BuildContext(records, multi),
	}

	tmpl := singleStudentTemplate
	if multi {
		tmpl = multiStudentTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func scoreDescription(policy students.ScorePolicy) string {
	switch policy {
	case students.PolicySum:
		return "total marks obtained across all questions of that subject."
	case students.PolicyMean:
		return "average mark obtained per question of that subject."
	default:
		return "marks obtained on each question of that subject, in order."
	}
}
