package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/authoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/scoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuiz struct {
	lectureID uuid.UUID
	author    uuid.UUID
	tests     []models.Test
	lastRaw   string
}

func (f *fakeQuiz) CreateTest(_ context.Context, lectureID, authorID uuid.UUID, in authoring.TestInput) (*models.Test, error) {
	if lectureID != f.lectureID {
		return nil, app_errors.ErrLectureNotFound
	}
	if authorID != f.author {
		return nil, app_errors.ErrNotCourseAuthor
	}
	f.lastRaw = in.Choices
	choices, err := authoring.ValidateAndParseChoices(in.Choices)
	if err != nil {
		return nil, err
	}
	t := models.Test{ID: uuid.New(), LectureID: lectureID, Question: in.Question, CorrectAnswer: in.CorrectAnswer, Choices: choices}
	f.tests = append(f.tests, t)
	return &t, nil
}

func (f *fakeQuiz) UpdateTest(_ context.Context, testID, authorID uuid.UUID, in authoring.TestInput) (*models.Test, error) {
	for i, t := range f.tests {
		if t.ID != testID {
			continue
		}
		if authorID != f.author {
			return nil, app_errors.ErrNotCourseAuthor
		}
		choices, err := authoring.ValidateAndParseChoices(in.Choices)
		if err != nil {
			return nil, err
		}
		t.Question, t.CorrectAnswer, t.Choices = in.Question, in.CorrectAnswer, choices
		f.tests[i] = t
		return &t, nil
	}
	return nil, app_errors.ErrTestNotFound
}

func (f *fakeQuiz) TestsByLecture(_ context.Context, lectureID, authorID uuid.UUID) ([]models.Test, error) {
	if lectureID != f.lectureID {
		return nil, app_errors.ErrLectureNotFound
	}
	if authorID != f.author {
		return nil, app_errors.ErrNotCourseAuthor
	}
	return append([]models.Test{}, f.tests...), nil
}

func (f *fakeQuiz) TestByID(_ context.Context, testID, authorID uuid.UUID) (*models.Test, error) {
	for _, t := range f.tests {
		if t.ID != testID {
			continue
		}
		if authorID != f.author {
			return nil, app_errors.ErrNotCourseAuthor
		}
		return &t, nil
	}
	return nil, app_errors.ErrTestNotFound
}

func (f *fakeQuiz) Score(_ context.Context, lectureID uuid.UUID, answers scoring.Answers) (models.TestResult, error) {
	if lectureID != f.lectureID {
		return models.TestResult{}, app_errors.ErrLectureNotFound
	}
	return scoring.Score(f.tests, answers), nil
}

func (f *fakeQuiz) Questions(_ context.Context, lectureID uuid.UUID) ([]models.Question, error) {
	if lectureID != f.lectureID {
		return nil, app_errors.ErrLectureNotFound
	}
	questions := make([]models.Question, 0, len(f.tests))
	for _, t := range f.tests {
		questions = append(questions, t.Public())
	}
	return questions, nil
}

func newRouter(f *fakeQuiz, caller uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewQuizHandler(logger.Discard(), f, f)
	r := gin.New()
	as := func(c *gin.Context) { c.Set(middleware.ClientIDCtx, caller) }
	r.GET("/lectures/:lecture_id/tests", h.ListTests)
	r.POST("/lectures/:lecture_id/tests", as, h.CreateTest)
	r.GET("/lectures/:lecture_id/tests/manage", as, h.ManageTests)
	r.GET("/tests/:test_id", as, h.TestByID)
	r.POST("/lectures/:lecture_id/tests/submit", as, h.SubmitTests)
	r.PUT("/tests/:test_id", as, h.UpdateTest)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateTestAcceptsChoicesAsStringOrList(t *testing.T) {
	f := &fakeQuiz{lectureID: uuid.New(), author: uuid.New()}
	r := newRouter(f, f.author)
	path := "/lectures/" + f.lectureID.String() + "/tests"

	w := serve(r, jsonRequest(http.MethodPost, path, `{"question":"2+2?","correct_answer":"4","choices":"[\"3\",\"4\"]"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, `["3","4"]`, f.lastRaw)

	w = serve(r, jsonRequest(http.MethodPost, path, `{"question":"3+3?","correct_answer":"6","choices":["5","6","7"]}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Test
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, []string{"5", "6", "7"}, created.Choices)
}

func TestCreateTestRejectsBadChoices(t *testing.T) {
	f := &fakeQuiz{lectureID: uuid.New(), author: uuid.New()}
	r := newRouter(f, f.author)
	path := "/lectures/" + f.lectureID.String() + "/tests"

	cases := map[string]string{
		"missing":      `{"question":"q","correct_answer":"a"}`,
		"empty string": `{"question":"q","correct_answer":"a","choices":""}`,
		"malformed":    `{"question":"q","correct_answer":"a","choices":"[a, b"}`,
		"single":       `{"question":"q","correct_answer":"a","choices":["a"]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := serve(r, jsonRequest(http.MethodPost, path, body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"field":"choices"`)
		})
	}
	assert.Empty(t, f.tests)

	w := serve(newRouter(f, uuid.New()), jsonRequest(http.MethodPost, path, `{"question":"q","correct_answer":"a","choices":["a","b"]}`))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListTestsHidesAnswers(t *testing.T) {
	f := &fakeQuiz{lectureID: uuid.New(), author: uuid.New()}
	f.tests = []models.Test{{ID: uuid.New(), LectureID: f.lectureID, Question: "q", CorrectAnswer: "secret", Choices: []string{"secret", "other"}}}
	r := newRouter(f, uuid.New())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/lectures/"+f.lectureID.String()+"/tests", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct_answer")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/lectures/"+uuid.NewString()+"/tests", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTest(t *testing.T) {
	f := &fakeQuiz{lectureID: uuid.New(), author: uuid.New()}
	id := uuid.New()
	f.tests = []models.Test{{ID: id, LectureID: f.lectureID, Question: "q", CorrectAnswer: "a", Choices: []string{"a", "b"}}}
	r := newRouter(f, f.author)

	w := serve(r, jsonRequest(http.MethodPut, "/tests/"+id.String(), `{"question":"q2","correct_answer":"c","choices":["c","d"]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "q2", f.tests[0].Question)

	w = serve(r, jsonRequest(http.MethodPut, "/tests/"+uuid.NewString(), `{"question":"q","correct_answer":"c","choices":["c","d"]}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitTests(t *testing.T) {
	f := &fakeQuiz{lectureID: uuid.New(), author: uuid.New()}
	first, second := uuid.New(), uuid.New()
	f.tests = []models.Test{
		{ID: first, LectureID: f.lectureID, CorrectAnswer: "4", Choices: []string{"3", "4"}},
		{ID: second, LectureID: f.lectureID, CorrectAnswer: "Go", Choices: []string{"Go", "Rust"}},
	}
	r := newRouter(f, uuid.New())
	path := "/lectures/" + f.lectureID.String() + "/tests/submit"

	form := url.Values{
		scoring.QuestionFieldPrefix + first.String():  {"4"},
		scoring.QuestionFieldPrefix + second.String(): {"Rust"},
		"csrfmiddlewaretoken":                         {"ignored"},
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":1,"total":2}`, w.Body.String())

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField(scoring.QuestionFieldPrefix+first.String(), "4"))
	require.NoError(t, mw.WriteField(scoring.QuestionFieldPrefix+second.String(), "Go"))
	require.NoError(t, mw.Close())
	req = httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":2,"total":2}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodPost, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":0,"total":2}`, w.Body.String())
}

func TestAuthorReadsTestsWithAnswers(t *testing.T) {
	f := &fakeQuiz{lectureID: uuid.New(), author: uuid.New()}
	id := uuid.New()
	f.tests = []models.Test{{ID: id, LectureID: f.lectureID, Question: "q", CorrectAnswer: "secret", Choices: []string{"secret", "other"}}}
	author := newRouter(f, f.author)

	w := serve(author, httptest.NewRequest(http.MethodGet, "/lectures/"+f.lectureID.String()+"/tests/manage", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var tests []models.Test
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tests))
	require.Len(t, tests, 1)
	assert.Equal(t, "secret", tests[0].CorrectAnswer)

	w = serve(author, httptest.NewRequest(http.MethodGet, "/tests/"+id.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var test models.Test
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &test))
	assert.Equal(t, "secret", test.CorrectAnswer)
	assert.Equal(t, []string{"secret", "other"}, test.Choices)

	w = serve(author, httptest.NewRequest(http.MethodGet, "/tests/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	stranger := newRouter(f, uuid.New())
	w = serve(stranger, httptest.NewRequest(http.MethodGet, "/tests/"+id.String(), nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = serve(stranger, httptest.NewRequest(http.MethodGet, "/lectures/"+f.lectureID.String()+"/tests/manage", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
