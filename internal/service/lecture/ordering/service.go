package ordering

import (
	"context"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
)

// Next returns the order for a new lecture given the current maximum order
// within its course. A course without lectures has a maximum of 0.
func Next(currentMax int) int {
	if currentMax < 0 {
		currentMax = 0
	}
	return currentMax + 1
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
}

type lectureRepo interface {
	GetMaxLectureOrder(ctx context.Context, courseID uuid.UUID) (int, error)
}

type OrderingService struct {
	log         logger.Log
	courseRepo  courseRepo
	lectureRepo lectureRepo
}

func NewOrderingService(log logger.Log, c courseRepo, l lectureRepo) *OrderingService {
	return &OrderingService{
		log:         log,
		courseRepo:  c,
		lectureRepo: l,
	}
}

// NextOrder reports the order the next lecture of the course would receive.
func (s *OrderingService) NextOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return 0, err
	}
	max, err := s.lectureRepo.GetMaxLectureOrder(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return Next(max), nil
}

func (s *OrderingService) NextOrderBySlug(ctx context.Context, slug string) (int, error) {
	course, err := s.courseRepo.CourseBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	return s.NextOrder(ctx, course.ID)
}
