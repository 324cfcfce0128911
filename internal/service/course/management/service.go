package management

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
)

const (
	maxImageSizeBytes = 5 << 20
	maxTitleLen       = 150
	maxSlugLen        = 150
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	SetImage(ctx context.Context, id uuid.UUID, objectKey string) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type imageRepo interface {
	UploadImage(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (objectKey string, err error)
	ImageURL(ctx context.Context, objectKey string) (string, error)
	DeleteImage(ctx context.Context, objectKey string) error
}

type CourseManagementService struct {
	log        logger.Log
	courseRepo courseRepo
	searchRepo searchRepo
	imageRepo  imageRepo
}

// NewCourseManagementService builds the service. searchRepo and imageRepo
// may be nil when Elasticsearch or object storage is not configured.
func NewCourseManagementService(log logger.Log, c courseRepo, s searchRepo, i imageRepo) *CourseManagementService {
	return &CourseManagementService{
		log:        log,
		courseRepo: c,
		searchRepo: s,
		imageRepo:  i,
	}
}

type CourseInput struct {
	Title       string
	Slug        string
	Description string
}

func validateCourse(in CourseInput) (models.Course, error) {
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		return models.Course{}, app_errors.NewValidationError("title", "this field is required")
	case utf8.RuneCountInString(title) > maxTitleLen:
		return models.Course{}, app_errors.NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}

	slug := strings.TrimSpace(in.Slug)
	switch {
	case slug == "":
		return models.Course{}, app_errors.NewValidationError("slug", "this field is required")
	case len(slug) > maxSlugLen:
		return models.Course{}, app_errors.NewValidationError("slug", fmt.Sprintf("must be at most %d characters", maxSlugLen))
	case !slugPattern.MatchString(slug):
		return models.Course{}, app_errors.NewValidationError("slug", "use only letters, numbers, underscores or hyphens")
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return models.Course{}, app_errors.NewValidationError("description", "this field is required")
	}
	return models.Course{Title: title, Slug: slug, Description: description}, nil
}

func (s *CourseManagementService) CreateCourse(ctx context.Context, authorID uuid.UUID, in CourseInput) (*models.Course, error) {
	course, err := validateCourse(in)
	if err != nil {
		return nil, err
	}
	course.AuthorID = authorID

	if _, err := s.courseRepo.NewCourse(ctx, &course); err != nil {
		return nil, err
	}
	s.log.Info("course created", "course_id", course.ID, "slug", course.Slug)

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, course); err != nil {
			s.log.ErrorErr("failed to index course", err, "course_id", course.ID)
		}
	}
	return &course, nil
}

func (s *CourseManagementService) ownedCourse(ctx context.Context, slug string, authorID uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.CourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course.AuthorID != authorID {
		return nil, app_errors.ErrNotCourseAuthor
	}
	return course, nil
}

// UploadCourseImage stores a new cover image for the course and returns a
// presigned URL to it.
func (s *CourseManagementService) UploadCourseImage(
	ctx context.Context,
	slug string,
	authorID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if s.imageRepo == nil {
		return "", app_errors.ErrServiceUnavailable
	}
	course, err := s.ownedCourse(ctx, slug, authorID)
	if err != nil {
		return "", err
	}

	if size <= 0 || size > maxImageSizeBytes {
		return "", app_errors.ErrFileSize
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", app_errors.ErrNotImage
	}

	objectKey, err := s.imageRepo.UploadImage(ctx, course.ID, filename, reader, size, contentType)
	if err != nil {
		s.log.ErrorErr("failed to upload image to storage", err, "course_id", course.ID)
		return "", err
	}
	if err := s.courseRepo.SetImage(ctx, course.ID, objectKey); err != nil {
		s.log.ErrorErr("failed to save image key to db", err, "course_id", course.ID)
		return "", err
	}
	if course.ImageObjectKey != "" && course.ImageObjectKey != objectKey {
		if err := s.imageRepo.DeleteImage(ctx, course.ImageObjectKey); err != nil {
			s.log.ErrorErr("failed to delete previous image", err, "course_id", course.ID)
		}
	}

	url, err := s.imageRepo.ImageURL(ctx, objectKey)
	if err != nil {
		s.log.ErrorErr("failed to get presigned URL", err)
		return "", err
	}
	return url, nil
}

// DeleteCourse removes the course with its lectures, comments and tests.
// The search document and the cover image are cleaned up afterwards; failures
// there are only logged.
func (s *CourseManagementService) DeleteCourse(ctx context.Context, slug string, authorID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, slug, authorID)
	if err != nil {
		return err
	}
	if err := s.courseRepo.DeleteCourse(ctx, course.ID); err != nil {
		return err
	}
	s.log.Info("course deleted", "course_id", course.ID, "slug", course.Slug)

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, course.ID); err != nil {
			s.log.ErrorErr("failed to remove course from search index", err, "course_id", course.ID)
		}
	}
	if s.imageRepo != nil && course.ImageObjectKey != "" {
		if err := s.imageRepo.DeleteImage(ctx, course.ImageObjectKey); err != nil {
			s.log.ErrorErr("failed to delete course image", err, "course_id", course.ID)
		}
	}
	return nil
}
