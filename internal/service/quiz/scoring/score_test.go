package scoring

import (
	"net/url"
	"testing"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t1, t2 := uuid.New(), uuid.New()
	tests := []models.Test{
		{ID: t1, CorrectAnswer: "A"},
		{ID: t2, CorrectAnswer: "B"},
	}

	answers := Answers{t1: "A", t2: "C"}
	assert.Equal(t, models.TestResult{Score: 1, Total: 2}, Score(tests, answers))
	assert.Equal(t, Score(tests, answers), Score(tests, answers))

	assert.Equal(t, models.TestResult{Score: 0, Total: 2}, Score(tests, nil))
	assert.Equal(t, models.TestResult{Score: 2, Total: 2}, Score(tests, Answers{t1: "A", t2: "B"}))
	assert.Equal(t, models.TestResult{}, Score(nil, answers))
}

func TestScoreIsExactMatch(t *testing.T) {
	id := uuid.New()
	tests := []models.Test{{ID: id, CorrectAnswer: "Paris"}}

	for _, answer := range []string{"paris", " Paris", "Paris ", "PARIS"} {
		assert.Equal(t, 0, Score(tests, Answers{id: answer}).Score, answer)
	}
}

func TestScoreIgnoresUnknownTests(t *testing.T) {
	id := uuid.New()
	tests := []models.Test{{ID: id, CorrectAnswer: "A"}}
	result := Score(tests, Answers{uuid.New(): "A"})
	assert.Equal(t, models.TestResult{Score: 0, Total: 1}, result)
}

func TestParseSubmission(t *testing.T) {
	t1, t2 := uuid.New(), uuid.New()
	form := url.Values{
		"question_" + t1.String(): {"A", "ignored"},
		"question_" + t2.String(): {""},
		"question_42":             {"B"},
		"csrfmiddlewaretoken":     {"x"},
		"question_":               {"C"},
	}

	answers := ParseSubmission(form)
	assert.Equal(t, Answers{t1: "A", t2: ""}, answers)
}
