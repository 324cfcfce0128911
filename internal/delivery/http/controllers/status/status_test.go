package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(h *StatusHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/status", h.Status)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	return w
}

func TestStatusAvailable(t *testing.T) {
	ok := func(context.Context) error { return nil }
	w := serve(NewStatusHandler(logger.Discard(), map[string]Check{"postgres": ok}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Available","services":{"postgres":"available"}}`, w.Body.String())
}

func TestStatusDegraded(t *testing.T) {
	checks := map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}
	w := serve(NewStatusHandler(logger.Discard(), checks))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"Degraded","services":{"postgres":"available","redis":"unavailable"}}`, w.Body.String())
}

func TestStatusWithoutChecks(t *testing.T) {
	w := serve(NewStatusHandler(logger.Discard(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Available","services":{}}`, w.Body.String())
}
