package scoring

import (
	"context"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
)

type lectureRepo interface {
	GetLectureByID(ctx context.Context, id uuid.UUID) (models.Lecture, error)
}

type testRepo interface {
	TestsByLecture(ctx context.Context, lectureID uuid.UUID) ([]models.Test, error)
}

type ScoringService struct {
	log         logger.Log
	lectureRepo lectureRepo
	testRepo    testRepo
}

func NewScoringService(log logger.Log, l lectureRepo, t testRepo) *ScoringService {
	return &ScoringService{
		log:         log,
		lectureRepo: l,
		testRepo:    t,
	}
}

func (s *ScoringService) tests(ctx context.Context, lectureID uuid.UUID) ([]models.Test, error) {
	if _, err := s.lectureRepo.GetLectureByID(ctx, lectureID); err != nil {
		return nil, err
	}
	return s.testRepo.TestsByLecture(ctx, lectureID)
}

// Score grades a submission against every test of the lecture. Nothing is
// stored, so repeating a submission yields the same result.
func (s *ScoringService) Score(ctx context.Context, lectureID uuid.UUID, answers Answers) (models.TestResult, error) {
	tests, err := s.tests(ctx, lectureID)
	if err != nil {
		return models.TestResult{}, err
	}
	result := Score(tests, answers)
	s.log.Debug("test submission scored", "lecture_id", lectureID, "score", result.Score, "total", result.Total)
	return result, nil
}

// Questions lists the tests of the lecture without their correct answers.
func (s *ScoringService) Questions(ctx context.Context, lectureID uuid.UUID) ([]models.Question, error) {
	tests, err := s.tests(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	questions := make([]models.Question, 0, len(tests))
	for _, t := range tests {
		questions = append(questions, t.Public())
	}
	return questions, nil
}
