package main

import (
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
