package models

import "github.com/google/uuid"

// Test is a single multiple-choice question attached to a lecture.
type Test struct {
	ID            uuid.UUID `json:"id"`
	LectureID     uuid.UUID `json:"lecture_id"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correct_answer"`
	Choices       []string  `json:"choices"`
}

// Question is the learner-facing view of a Test.
type Question struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Choices  []string  `json:"choices"`
}

func (t Test) Public() Question {
	return Question{ID: t.ID, Question: t.Question, Choices: t.Choices}
}

type TestResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
