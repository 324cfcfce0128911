package course

import (
	"context"
	"io"
	"net/http"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/httperr"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/course/management"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementService interface {
	CreateCourse(ctx context.Context, authorID uuid.UUID, in management.CourseInput) (*models.Course, error)
	UploadCourseImage(ctx context.Context, slug string, authorID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteCourse(ctx context.Context, slug string, authorID uuid.UUID) error
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     l,
		service: s,
	}
}

type newCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *ManagementHandler) CreateCourse(c *gin.Context) {
	var input newCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), authorID, management.CourseInput{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *ManagementHandler) UploadCourseImage(c *gin.Context) {
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadCourseImage(
		c.Request.Context(),
		c.Param("slug"),
		authorID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *ManagementHandler) DeleteCourse(c *gin.Context) {
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.service.DeleteCourse(c.Request.Context(), c.Param("slug"), authorID); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
