package lecture

import (
	"context"
	"net/http"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/httperr"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LectureService interface {
	CreateLecture(ctx context.Context, courseSlug string, authorID uuid.UUID, title, videoURL string) (*models.Lecture, error)
	LectureDetail(ctx context.Context, lectureID uuid.UUID, rawPage string) (*models.LectureDetail, error)
	DeleteLecture(ctx context.Context, lectureID, authorID uuid.UUID) error
}

type OrderingService interface {
	NextOrderBySlug(ctx context.Context, slug string) (int, error)
}

type CommentService interface {
	PostComment(ctx context.Context, lectureID, authorID uuid.UUID, text string) (*models.Comment, error)
	Comments(ctx context.Context, lectureID uuid.UUID, rawPage string) (models.Page[models.Comment], error)
}

type LectureHandler struct {
	log      logger.Log
	lectures LectureService
	ordering OrderingService
	comments CommentService
}

func NewLectureHandler(l logger.Log, lectures LectureService, ordering OrderingService, comments CommentService) *LectureHandler {
	return &LectureHandler{
		log:      l,
		lectures: lectures,
		ordering: ordering,
		comments: comments,
	}
}

type newLectureRequest struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"video_url"`
}

func (h *LectureHandler) CreateLecture(c *gin.Context) {
	var input newLectureRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lecture, err := h.lectures.CreateLecture(c.Request.Context(), c.Param("slug"), authorID, input.Title, input.VideoURL)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, lecture)
}

func (h *LectureHandler) NextOrder(c *gin.Context) {
	next, err := h.ordering.NextOrderBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_order": next})
}

func (h *LectureHandler) LectureDetail(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	detail, err := h.lectures.LectureDetail(c.Request.Context(), lectureID, c.Query("page"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *LectureHandler) DeleteLecture(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.lectures.DeleteLecture(c.Request.Context(), lectureID, authorID); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LectureHandler) ListComments(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	page, err := h.comments.Comments(c.Request.Context(), lectureID, c.Query("page"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type newCommentRequest struct {
	Text string `json:"text" form:"text"`
}

// PostComment accepts the comment as JSON or as a submitted form.
func (h *LectureHandler) PostComment(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	var input newCommentRequest
	if err := c.ShouldBind(&input); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	comment, err := h.comments.PostComment(c.Request.Context(), lectureID, authorID, input.Text)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
