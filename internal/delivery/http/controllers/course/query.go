package course

import (
	"context"
	"net/http"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/httperr"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
)

type QueryService interface {
	Search(ctx context.Context, query, rawPage string) (models.Page[models.CoursePreview], error)
	CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error)
}

type QueryHandler struct {
	log     logger.Log
	service QueryService
}

func NewQueryHandler(l logger.Log, s QueryService) *QueryHandler {
	return &QueryHandler{
		log:     l,
		service: s,
	}
}

// ListCourses serves GET /courses?page=&query=. Without a query it lists all
// courses newest first.
func (h *QueryHandler) ListCourses(c *gin.Context) {
	page, err := h.service.Search(c.Request.Context(), c.Query("query"), c.Query("page"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *QueryHandler) CourseBySlug(c *gin.Context) {
	detail, err := h.service.CourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
