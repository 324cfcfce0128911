package status

import (
	"context"
	"net/http"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check reports whether a backing service answers.
type Check func(ctx context.Context) error

type StatusHandler struct {
	log    logger.Log
	checks map[string]Check
}

func NewStatusHandler(l logger.Log, checks map[string]Check) *StatusHandler {
	return &StatusHandler{
		log:    l,
		checks: checks,
	}
}

func (h *StatusHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	code := http.StatusOK
	services := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("status check failed", "service", name, "error", err.Error())
			services[name] = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		services[name] = "available"
	}

	status := "Available"
	if code != http.StatusOK {
		status = "Degraded"
	}
	c.JSON(code, gin.H{"status": status, "services": services})
}
