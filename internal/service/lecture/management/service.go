package management

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/ordering"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
)

const (
	maxTitleLen    = 150
	maxVideoURLLen = 200
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
}

type lectureRepo interface {
	CreateLecture(ctx context.Context, lecture models.Lecture, next func(currentMax int) int) (*models.Lecture, error)
	GetLectureByID(ctx context.Context, id uuid.UUID) (models.Lecture, error)
	LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error)
	DeleteLecture(ctx context.Context, id uuid.UUID) error
}

type commentPager interface {
	Comments(ctx context.Context, lectureID uuid.UUID, rawPage string) (models.Page[models.Comment], error)
}

type LectureManagementService struct {
	log         logger.Log
	courseRepo  courseRepo
	lectureRepo lectureRepo
	comments    commentPager
}

func NewLectureManagementService(log logger.Log, c courseRepo, l lectureRepo, cm commentPager) *LectureManagementService {
	return &LectureManagementService{
		log:         log,
		courseRepo:  c,
		lectureRepo: l,
		comments:    cm,
	}
}

func validateVideoURL(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if len(raw) > maxVideoURLLen {
		return nil, app_errors.NewValidationError("video_url", fmt.Sprintf("must be at most %d characters", maxVideoURLLen))
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, app_errors.NewValidationError("video_url", "enter a valid URL")
	}
	return &raw, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", app_errors.NewValidationError("title", "this field is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", app_errors.NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}
	return title, nil
}

// CreateLecture appends a lecture to the course identified by slug. The
// lecture gets the next free order of that course.
func (s *LectureManagementService) CreateLecture(ctx context.Context, courseSlug string, authorID uuid.UUID, title, videoURL string) (*models.Lecture, error) {
	course, err := s.courseRepo.CourseBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if course.AuthorID != authorID {
		return nil, app_errors.ErrNotCourseAuthor
	}
	title, err = validateTitle(title)
	if err != nil {
		return nil, err
	}
	video, err := validateVideoURL(videoURL)
	if err != nil {
		return nil, err
	}

	lecture, err := s.lectureRepo.CreateLecture(ctx, models.Lecture{
		CourseID: course.ID,
		Title:    title,
		VideoURL: video,
	}, ordering.Next)
	if err != nil {
		return nil, fmt.Errorf("create lecture: %w", err)
	}
	s.log.Info("lecture created", "lecture_id", lecture.ID, "course_id", course.ID, "order", *lecture.Order)
	return lecture, nil
}

// LectureDetail returns the lecture with the requested page of its comments,
// newest first.
func (s *LectureManagementService) LectureDetail(ctx context.Context, lectureID uuid.UUID, rawPage string) (*models.LectureDetail, error) {
	lecture, err := s.lectureRepo.GetLectureByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Comments(ctx, lectureID, rawPage)
	if err != nil {
		return nil, err
	}
	return &models.LectureDetail{
		Lecture:  lecture,
		Comments: comments,
	}, nil
}

func (s *LectureManagementService) DeleteLecture(ctx context.Context, lectureID, authorID uuid.UUID) error {
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
	return s.lectureRepo.DeleteLecture(ctx, lectureID)
}

// LecturesByCourse lists the lectures of a course by order, never nil.
func (s *LectureManagementService) LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	lectures, err := s.lectureRepo.LecturesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if lectures == nil {
		lectures = []models.Lecture{}
	}
	return lectures, nil
}
