package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const previewWorkers = 4

type courseRepo interface {
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CountCourses(ctx context.Context) (int, error)
	ListCourses(ctx context.Context, limit, offset int) ([]models.Course, error)
	CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error)
}

type lectureRepo interface {
	LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error)
}

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type imageRepo interface {
	ImageURL(ctx context.Context, objectKey string) (string, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string, limit, offset int) ([]uuid.UUID, int, error)
	Count(ctx context.Context, query string) (int, error)
}

type CourseQueryService struct {
	log         logger.Log
	courseRepo  courseRepo
	lectureRepo lectureRepo
	userRepo    userRepo
	imageRepo   imageRepo
	searchRepo  searchRepo
}

// NewCourseQueryService builds the service. imageRepo and searchRepo may be
// nil when object storage or Elasticsearch is not configured.
func NewCourseQueryService(log logger.Log, c courseRepo, l lectureRepo, u userRepo, i imageRepo, s searchRepo) *CourseQueryService {
	return &CourseQueryService{
		log:         log,
		courseRepo:  c,
		lectureRepo: l,
		userRepo:    u,
		imageRepo:   i,
		searchRepo:  s,
	}
}

func (s *CourseQueryService) authorName(ctx context.Context, id uuid.UUID) string {
	author, err := s.userRepo.UserByID(ctx, id)
	if err != nil {
		s.log.ErrorErr("failed to get course author", err, "author_id", id)
		return ""
	}
	return author.Username
}

func (s *CourseQueryService) imageURL(ctx context.Context, objectKey string) string {
	if s.imageRepo == nil || objectKey == "" {
		return ""
	}
	url, err := s.imageRepo.ImageURL(ctx, objectKey)
	if err != nil {
		s.log.ErrorErr("failed to get image URL", err, "object_key", objectKey)
		return ""
	}
	return url
}

func (s *CourseQueryService) preview(ctx context.Context, c models.Course) models.CoursePreview {
	return models.CoursePreview{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		AuthorName:  s.authorName(ctx, c.AuthorID),
		ImageURL:    s.imageURL(ctx, c.ImageObjectKey),
		CreatedAt:   c.CreatedAt,
	}
}

// previews resolves author names and image URLs of a page of courses, a few
// courses at a time. The result keeps the order of courses.
func (s *CourseQueryService) previews(ctx context.Context, courses []models.Course) []models.CoursePreview {
	out := make([]models.CoursePreview, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(previewWorkers)
	for i, c := range courses {
		g.Go(func() error {
			out[i] = s.preview(gctx, c)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Courses lists courses newest first, six per page.
func (s *CourseQueryService) Courses(ctx context.Context, rawPage string) (models.Page[models.CoursePreview], error) {
	total, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return models.Page[models.CoursePreview]{}, err
	}
	req := models.ResolvePage(rawPage, models.CoursesPerPage, total)
	courses, err := s.courseRepo.ListCourses(ctx, req.Limit(), req.Offset())
	if err != nil {
		return models.Page[models.CoursePreview]{}, err
	}
	return models.NewPage(req, s.previews(ctx, courses)), nil
}

// Search returns courses matching query, best match first. An empty query
// lists all courses.
func (s *CourseQueryService) Search(ctx context.Context, query, rawPage string) (models.Page[models.CoursePreview], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Courses(ctx, rawPage)
	}
	if s.searchRepo == nil {
		return models.Page[models.CoursePreview]{}, app_errors.ErrServiceUnavailable
	}

	total, err := s.searchRepo.Count(ctx, query)
	if err != nil {
		return models.Page[models.CoursePreview]{}, fmt.Errorf("search count: %w", err)
	}
	req := models.ResolvePage(rawPage, models.CoursesPerPage, total)
	ids, _, err := s.searchRepo.Search(ctx, query, req.Limit(), req.Offset())
	if err != nil {
		return models.Page[models.CoursePreview]{}, fmt.Errorf("search: %w", err)
	}
	courses, err := s.courseRepo.CoursesByIDs(ctx, ids)
	if err != nil {
		return models.Page[models.CoursePreview]{}, err
	}
	return models.NewPage(req, s.previews(ctx, courses)), nil
}

// CourseBySlug returns the course with its lectures in order. Lectures, the
// author and the image URL are loaded concurrently.
func (s *CourseQueryService) CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error) {
	course, err := s.courseRepo.CourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &models.CourseDetail{
		CoursePreview: models.CoursePreview{
			ID:          course.ID,
			Title:       course.Title,
			Slug:        course.Slug,
			Description: course.Description,
			CreatedAt:   course.CreatedAt,
		},
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lectures, err := s.lectureRepo.LecturesByCourse(gctx, course.ID)
		if err != nil {
			return fmt.Errorf("load lectures: %w", err)
		}
		if lectures == nil {
			lectures = []models.Lecture{}
		}
		detail.Lectures = lectures
		return nil
	})
	g.Go(func() error {
		detail.AuthorName = s.authorName(gctx, course.AuthorID)
		return nil
	})
	g.Go(func() error {
		detail.ImageURL = s.imageURL(gctx, course.ImageObjectKey)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}
