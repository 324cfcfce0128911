package comment

import (
	"context"
	"strings"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
)

type lectureRepo interface {
	GetLectureByID(ctx context.Context, id uuid.UUID) (models.Lecture, error)
}

type commentRepo interface {
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	CountComments(ctx context.Context, lectureID uuid.UUID) (int, error)
	CommentsByLecture(ctx context.Context, lectureID uuid.UUID, limit, offset int) ([]models.Comment, error)
}

type CommentService struct {
	log         logger.Log
	lectureRepo lectureRepo
	commentRepo commentRepo
	now         func() time.Time
}

func NewCommentService(log logger.Log, l lectureRepo, c commentRepo) *CommentService {
	return &CommentService{
		log:         log,
		lectureRepo: l,
		commentRepo: c,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) PostComment(ctx context.Context, lectureID, authorID uuid.UUID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, app_errors.NewValidationError("text", "comment text must not be blank")
	}
	if _, err := s.lectureRepo.GetLectureByID(ctx, lectureID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.CreateComment(ctx, models.Comment{
		LectureID: lectureID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("comment posted", "comment_id", comment.ID, "lecture_id", lectureID)
	return comment, nil
}

func (s *CommentService) Comments(ctx context.Context, lectureID uuid.UUID, rawPage string) (models.Page[models.Comment], error) {
	if _, err := s.lectureRepo.GetLectureByID(ctx, lectureID); err != nil {
		return models.Page[models.Comment]{}, err
	}
	total, err := s.commentRepo.CountComments(ctx, lectureID)
	if err != nil {
		return models.Page[models.Comment]{}, err
	}
	req := models.ResolvePage(rawPage, models.CommentsPerPage, total)
	comments, err := s.commentRepo.CommentsByLecture(ctx, lectureID, req.Limit(), req.Offset())
	if err != nil {
		return models.Page[models.Comment]{}, err
	}
	return models.NewPage(req, comments), nil
}
