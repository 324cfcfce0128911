package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	users map[string]models.User
}

func (f *fakeAuthService) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	if len(user.Password) < 6 {
		return nil, app_errors.NewValidationError("password", "too short")
	}
	if _, ok := f.users[user.Username]; ok {
		return nil, app_errors.ErrUserExists
	}
	user.ID = uuid.New()
	if len(user.Roles) == 0 {
		user.Roles = []string{models.LearnerRole}
	}
	f.users[user.Username] = user
	return &user, nil
}

func (f *fakeAuthService) LoginUser(_ context.Context, username, password string) (string, string, error) {
	u, ok := f.users[username]
	if !ok {
		return "", "", app_errors.ErrUserNotFound
	}
	if u.Password != password {
		return "", "", app_errors.ErrIncorrectPassword
	}
	return "access-" + username, "refresh-" + username, nil
}

func (f *fakeAuthService) User(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}

func (f *fakeAuthService) RefreshTokens(_ context.Context, token string) (*models.TokenPair, error) {
	if token != "refresh-ann" {
		return nil, app_errors.ErrTokenNotFound
	}
	return &models.TokenPair{AccessToken: &jwt.Token{Raw: "a2"}, RefreshToken: &jwt.Token{Raw: "r2"}}, nil
}

func newRouter(svc *fakeAuthService, as *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(logger.Discard(), svc)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.GET("/me", func(c *gin.Context) {
		if as != nil {
			c.Set(middleware.ClientIDCtx, *as)
		}
	}, h.Me)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	svc := &fakeAuthService{users: map[string]models.User{}}
	r := newRouter(svc, nil)

	w := do(r, http.MethodPost, "/register", `{"username":"ann","password":"secret1","email":"ann@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ann", resp.Username)
	assert.Equal(t, []string{models.LearnerRole}, resp.Roles)
	assert.NotContains(t, w.Body.String(), "secret1")

	w = do(r, http.MethodPost, "/register", `{"username":"ann","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/register", `{"username":"bob","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"password"`)

	w = do(r, http.MethodPost, "/register", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndRefresh(t *testing.T) {
	svc := &fakeAuthService{users: map[string]models.User{"ann": {ID: uuid.New(), Username: "ann", Password: "secret1"}}}
	r := newRouter(svc, nil)

	w := do(r, http.MethodPost, "/login", `{"username":"ann","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"access-ann","refresh_token":"refresh-ann"}`, w.Body.String())

	w = do(r, http.MethodPost, "/login", `{"username":"ann","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/login", `{"username":"ghost","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "not found")

	w = do(r, http.MethodPost, "/refresh", `{"refresh_token":"refresh-ann"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"a2","refresh_token":"r2"}`, w.Body.String())

	w = do(r, http.MethodPost, "/refresh", `{"refresh_token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	ann := models.User{ID: uuid.New(), Username: "ann", Email: "ann@example.com", Roles: []string{models.AuthorRole}}
	svc := &fakeAuthService{users: map[string]models.User{"ann": ann}}

	w := do(newRouter(svc, &ann.ID), http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"`+ann.ID.String()+`","username":"ann","email":"ann@example.com","roles":["author"]}`, w.Body.String())

	w = do(newRouter(svc, nil), http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
