package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/config"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/comment"
	lecturemanagement "github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/management"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/scoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type lectureStore struct {
	lecture models.Lecture
}

func (s *lectureStore) GetLectureByID(_ context.Context, id uuid.UUID) (models.Lecture, error) {
	if id != s.lecture.ID {
		return models.Lecture{}, app_errors.ErrLectureNotFound
	}
	return s.lecture, nil
}

func (s *lectureStore) CreateLecture(context.Context, models.Lecture, func(int) int) (*models.Lecture, error) {
	return nil, app_errors.ErrServiceUnavailable
}

func (s *lectureStore) LecturesByCourse(context.Context, uuid.UUID) ([]models.Lecture, error) {
	return []models.Lecture{s.lecture}, nil
}

func (s *lectureStore) DeleteLecture(context.Context, uuid.UUID) error {
	return app_errors.ErrServiceUnavailable
}

func (s *lectureStore) CourseByID(context.Context, uuid.UUID) (*models.Course, error) {
	return nil, app_errors.ErrCourseNotFound
}

func (s *lectureStore) CourseBySlug(context.Context, string) (*models.Course, error) {
	return nil, app_errors.ErrCourseNotFound
}

func (s *lectureStore) CreateComment(context.Context, models.Comment) (*models.Comment, error) {
	return nil, app_errors.ErrServiceUnavailable
}

func (s *lectureStore) CountComments(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (s *lectureStore) CommentsByLecture(context.Context, uuid.UUID, int, int) ([]models.Comment, error) {
	return nil, nil
}

func (s *lectureStore) TestsByLecture(_ context.Context, lectureID uuid.UUID) ([]models.Test, error) {
	return []models.Test{{ID: uuid.New(), LectureID: lectureID, Question: "q", CorrectAnswer: "a", Choices: []string{"a", "b"}}}, nil
}

func newTestRouter(store *lectureStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := logger.Discard()
	comments := comment.NewCommentService(l, store, store)
	u := service.Collection{
		Lectures: lecturemanagement.NewLectureManagementService(l, store, store, comments),
		Comments: comments,
		Scoring:  scoring.NewScoringService(l, store, store),
	}
	cfg := &config.Config{}
	cfg.HTTPServer.AllowOrigins = []string{"http://localhost:5173"}
	return InitRoutes(l, u, Deps{Config: cfg})
}

func TestLectureReadsArePublic(t *testing.T) {
	store := &lectureStore{lecture: models.Lecture{ID: uuid.New(), Title: "Intro"}}
	r := newTestRouter(store)
	base := "/v1/lectures/" + store.lecture.ID.String()

	for _, path := range []string{base, base + "/comments?page=1", base + "/tests"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, base+"/tests", nil))
	assert.NotContains(t, w.Body.String(), "correct_answer")
}

func TestLectureWritesRequireLogin(t *testing.T) {
	store := &lectureStore{lecture: models.Lecture{ID: uuid.New()}}
	r := newTestRouter(store)
	base := "/v1/lectures/" + store.lecture.ID.String()

	cases := []struct{ method, path string }{
		{http.MethodPost, base + "/comments"},
		{http.MethodPost, base + "/tests/submit"},
		{http.MethodPost, base + "/tests"},
		{http.MethodGet, base + "/tests/manage"},
		{http.MethodDelete, base},
		{http.MethodGet, "/v1/tests/" + uuid.NewString()},
		{http.MethodPut, "/v1/tests/" + uuid.NewString()},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}
