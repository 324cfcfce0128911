package scoring

import (
	"net/url"
	"strings"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"

	"github.com/google/uuid"
)

// QuestionFieldPrefix prefixes every answer field of a submitted test form.
const QuestionFieldPrefix = "question_"

// Answers maps a test id to the answer a learner picked.
type Answers map[uuid.UUID]string

// Score counts the tests whose correct answer equals the submitted answer
// exactly. Tests without an answer count as wrong.
func Score(tests []models.Test, answers Answers) models.TestResult {
	result := models.TestResult{Total: len(tests)}
	for _, test := range tests {
		answer, ok := answers[test.ID]
		if ok && answer == test.CorrectAnswer {
			result.Score++
		}
	}
	return result
}

// ParseSubmission extracts answers from form fields named question_<test id>.
// Unrelated fields and fields with an invalid id are ignored. Only the first
// value of a repeated field is used.
func ParseSubmission(form url.Values) Answers {
	answers := make(Answers, len(form))
	for field, values := range form {
		rawID, ok := strings.CutPrefix(field, QuestionFieldPrefix)
		if !ok || len(values) == 0 {
			continue
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		answers[id] = values[0]
	}
	return answers
}
