package http

import (
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/config"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/auth"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/course"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/lecture"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/quiz"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/status"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries what the router needs besides the services. Counter may be
// nil, which disables rate limiting.
type Deps struct {
	Config  *config.Config
	Counter middleware.RateCounter
	Checks  map[string]status.Check
}

func InitRoutes(l logger.Log, u service.Collection, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     d.Config.HTTPServer.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(corsConfig))
	r.Use(otelgin.Middleware(d.Config.Tracing.ServiceName))

	statusController := status.NewStatusHandler(l, d.Checks)
	authController := auth.NewAuthHandler(l, u.Auth)
	authProvider := middleware.NewAuthMiddlewareProvider(l, u.Auth)
	courseManagement := course.NewManagementHandler(l, u.CourseManagement)
	courseQuery := course.NewQueryHandler(l, u.CourseQuery)
	lectureController := lecture.NewLectureHandler(l, u.Lectures, u.Ordering, u.Comments)
	quizController := quiz.NewQuizHandler(l, u.Authoring, u.Scoring)

	limiter := middleware.NewRateLimiter(l, d.Counter)
	rl := d.Config.Redis
	authLimit := limiter.Limit("auth", rl.AuthLimit, rl.AuthWindow)
	writeLimit := limiter.Limit("write", rl.WriteLimit, rl.WriteWindow)

	authorOnly := middleware.RequireAuthor()

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authProvider.AuthMiddleware, authController.Me)

		authGroup := v1.Group("/auth", authLimit)
		{
			authGroup.POST("/login", authController.Login)
			authGroup.POST("/register", authController.Register)
			authGroup.POST("/refresh", authController.Refresh)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", courseQuery.ListCourses)
			courses.GET("/:slug", courseQuery.CourseBySlug)

			author := courses.Group("", authProvider.AuthMiddleware, authorOnly)
			{
				author.POST("", writeLimit, courseManagement.CreateCourse)
				author.PUT("/:slug/image", writeLimit, courseManagement.UploadCourseImage)
				author.DELETE("/:slug", courseManagement.DeleteCourse)
				author.POST("/:slug/lectures", writeLimit, lectureController.CreateLecture)
				author.GET("/:slug/next-order", lectureController.NextOrder)
			}
		}

		lectures := v1.Group("/lectures/:lecture_id")
		{
			lectures.GET("", lectureController.LectureDetail)
			lectures.GET("/comments", lectureController.ListComments)
			lectures.GET("/tests", quizController.ListTests)

			learner := lectures.Group("", authProvider.AuthMiddleware)
			{
				learner.POST("/comments", writeLimit, lectureController.PostComment)
				learner.POST("/tests/submit", writeLimit, quizController.SubmitTests)
			}

			author := lectures.Group("", authProvider.AuthMiddleware, authorOnly)
			{
				author.DELETE("", lectureController.DeleteLecture)
				author.GET("/tests/manage", quizController.ManageTests)
				author.POST("/tests", writeLimit, quizController.CreateTest)
			}
		}

		tests := v1.Group("/tests", authProvider.AuthMiddleware, authorOnly)
		{
			tests.GET("/:test_id", quizController.TestByID)
			tests.PUT("/:test_id", writeLimit, quizController.UpdateTest)
		}
	}
	return r
}
