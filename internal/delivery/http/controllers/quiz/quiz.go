package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/httperr"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/authoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/scoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxSubmissionMemory = 1 << 20

type AuthoringService interface {
	CreateTest(ctx context.Context, lectureID, authorID uuid.UUID, in authoring.TestInput) (*models.Test, error)
	UpdateTest(ctx context.Context, testID, authorID uuid.UUID, in authoring.TestInput) (*models.Test, error)
	TestsByLecture(ctx context.Context, lectureID, authorID uuid.UUID) ([]models.Test, error)
	TestByID(ctx context.Context, testID, authorID uuid.UUID) (*models.Test, error)
}

type ScoringService interface {
	Score(ctx context.Context, lectureID uuid.UUID, answers scoring.Answers) (models.TestResult, error)
	Questions(ctx context.Context, lectureID uuid.UUID) ([]models.Question, error)
}

type QuizHandler struct {
	log       logger.Log
	authoring AuthoringService
	scoring   ScoringService
}

func NewQuizHandler(l logger.Log, a AuthoringService, s ScoringService) *QuizHandler {
	return &QuizHandler{
		log:       l,
		authoring: a,
		scoring:   s,
	}
}

// testRequest carries choices either as a JSON string holding the list, the
// way a form field would, or as the list itself.
type testRequest struct {
	Question      string          `json:"question"`
	CorrectAnswer string          `json:"correct_answer"`
	Choices       json.RawMessage `json:"choices"`
}

func (r testRequest) input() authoring.TestInput {
	in := authoring.TestInput{Question: r.Question, CorrectAnswer: r.CorrectAnswer}
	var text string
	if err := json.Unmarshal(r.Choices, &text); err == nil {
		in.Choices = text
	} else if string(r.Choices) != "null" {
		in.Choices = string(r.Choices)
	}
	return in
}

func (h *QuizHandler) ListTests(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	questions, err := h.scoring.Questions(c.Request.Context(), lectureID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// ManageTests lists the tests of a lecture with their correct answers for
// the author of the course.
func (h *QuizHandler) ManageTests(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	tests, err := h.authoring.TestsByLecture(c.Request.Context(), lectureID, authorID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

func (h *QuizHandler) TestByID(c *gin.Context) {
	testID, ok := middleware.ParamUUID(c, "test_id")
	if !ok {
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	test, err := h.authoring.TestByID(c.Request.Context(), testID, authorID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

func (h *QuizHandler) CreateTest(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	var input testRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	test, err := h.authoring.CreateTest(c.Request.Context(), lectureID, authorID, input.input())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, test)
}

func (h *QuizHandler) UpdateTest(c *gin.Context) {
	testID, ok := middleware.ParamUUID(c, "test_id")
	if !ok {
		return
	}
	var input testRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	authorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	test, err := h.authoring.UpdateTest(c.Request.Context(), testID, authorID, input.input())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

// SubmitTests grades a form whose fields are named question_<test id>.
func (h *QuizHandler) SubmitTests(c *gin.Context) {
	lectureID, ok := middleware.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	err := c.Request.ParseMultipartForm(maxSubmissionMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		httperr.BadRequest(c, err)
		return
	}

	result, err := h.scoring.Score(c.Request.Context(), lectureID, scoring.ParseSubmission(c.Request.PostForm))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
