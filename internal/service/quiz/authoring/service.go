package authoring

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
)

const maxCorrectAnswerLen = 150

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type lectureRepo interface {
	GetLectureByID(ctx context.Context, id uuid.UUID) (models.Lecture, error)
}

type testRepo interface {
	CreateTest(ctx context.Context, test models.Test) (*models.Test, error)
	UpdateTest(ctx context.Context, test models.Test) (*models.Test, error)
	TestByID(ctx context.Context, id uuid.UUID) (models.Test, error)
	TestsByLecture(ctx context.Context, lectureID uuid.UUID) ([]models.Test, error)
}

type AuthoringService struct {
	log         logger.Log
	courseRepo  courseRepo
	lectureRepo lectureRepo
	testRepo    testRepo
}

func NewAuthoringService(log logger.Log, c courseRepo, l lectureRepo, t testRepo) *AuthoringService {
	return &AuthoringService{
		log:         log,
		courseRepo:  c,
		lectureRepo: l,
		testRepo:    t,
	}
}

// TestInput is the raw form of a test as submitted by an author.
type TestInput struct {
	Question      string
	CorrectAnswer string
	Choices       string
}

func (s *AuthoringService) buildTest(in TestInput) (models.Test, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return models.Test{}, app_errors.NewValidationError("question", "this field is required")
	}
	// The answer is stored as sent: scoring compares it byte for byte with
	// the chosen option, and options are stored as sent too.
	answer := in.CorrectAnswer
	if strings.TrimSpace(answer) == "" {
		return models.Test{}, app_errors.NewValidationError("correct_answer", "this field is required")
	}
	if utf8.RuneCountInString(answer) > maxCorrectAnswerLen {
		return models.Test{}, app_errors.NewValidationError("correct_answer", fmt.Sprintf("must be at most %d characters", maxCorrectAnswerLen))
	}
	choices, err := ValidateAndParseChoices(in.Choices)
	if err != nil {
		return models.Test{}, err
	}
	return models.Test{Question: question, CorrectAnswer: answer, Choices: choices}, nil
}

// authorizeLecture loads the lecture and checks that authorID owns its course.
func (s *AuthoringService) authorizeLecture(ctx context.Context, lectureID, authorID uuid.UUID) error {
	lecture, err := s.lectureRepo.GetLectureByID(ctx, lectureID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.CourseByID(ctx, lecture.CourseID)
	if err != nil {
		return err
	}
	if course.AuthorID != authorID {
		return app_errors.ErrNotCourseAuthor
	}
	return nil
}

func (s *AuthoringService) warnUnlistedAnswer(test *models.Test) {
	if !slices.Contains(test.Choices, test.CorrectAnswer) {
		s.log.Warn("correct answer is not among the choices", "test_id", test.ID, "lecture_id", test.LectureID)
	}
}

func (s *AuthoringService) CreateTest(ctx context.Context, lectureID, authorID uuid.UUID, in TestInput) (*models.Test, error) {
	test, err := s.buildTest(in)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLecture(ctx, lectureID, authorID); err != nil {
		return nil, err
	}
	test.LectureID = lectureID

	created, err := s.testRepo.CreateTest(ctx, test)
	if err != nil {
		return nil, fmt.Errorf("create test: %w", err)
	}
	s.warnUnlistedAnswer(created)
	return created, nil
}

func (s *AuthoringService) UpdateTest(ctx context.Context, testID, authorID uuid.UUID, in TestInput) (*models.Test, error) {
	existing, err := s.testRepo.TestByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	test, err := s.buildTest(in)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLecture(ctx, existing.LectureID, authorID); err != nil {
		return nil, err
	}
	test.ID = existing.ID
	test.LectureID = existing.LectureID

	updated, err := s.testRepo.UpdateTest(ctx, test)
	if err != nil {
		return nil, fmt.Errorf("update test: %w", err)
	}
	s.warnUnlistedAnswer(updated)
	return updated, nil
}

// TestsByLecture lists the tests of a lecture with their correct answers.
// Only the author of the owning course may read them.
func (s *AuthoringService) TestsByLecture(ctx context.Context, lectureID, authorID uuid.UUID) ([]models.Test, error) {
	if err := s.authorizeLecture(ctx, lectureID, authorID); err != nil {
		return nil, err
	}
	tests, err := s.testRepo.TestsByLecture(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if tests == nil {
		tests = []models.Test{}
	}
	return tests, nil
}

func (s *AuthoringService) TestByID(ctx context.Context, testID, authorID uuid.UUID) (*models.Test, error) {
	test, err := s.testRepo.TestByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLecture(ctx, test.LectureID, authorID); err != nil {
		return nil, err
	}
	return &test, nil
}
