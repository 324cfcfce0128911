package app

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app/server"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/config"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/middleware"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/delivery/http/controllers/status"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/auth"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/course/management"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/course/query"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/comment"
	lecturemanagement "github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/management"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/ordering"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/notification"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/authoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/scoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/storage/elastic"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/storage/minio_storage"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/storage/postgres"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/storage/redis_storage"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/tracing"

	"github.com/google/uuid"
)

const startupTimeout = 15 * time.Second

// courseIndex and imageStore stay nil interfaces when the backing service
// is not configured, so services can tell it is missing.
type courseIndex interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit, offset int) ([]uuid.UUID, int, error)
	Count(ctx context.Context, query string) (int, error)
}

type imageStore interface {
	UploadImage(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	ImageURL(ctx context.Context, objectKey string) (string, error)
	DeleteImage(ctx context.Context, objectKey string) error
}

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, os.Stdout, tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.Env,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			log.FatalErr("error initializing tracing", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.ErrorErr("error flushing traces", err)
			}
		}()
	}

	pg, err := postgres.NewPostgresPool(ctx, cfg.Postgres.DSN())
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()
	checks := map[string]status.Check{"postgres": pg.Pool.Ping}

	if !cfg.Postgres.SkipMigrations {
		if err := pg.Migrate(ctx); err != nil {
			log.FatalErr("error applying migrations", err)
		}
	}

	var images imageStore
	if cfg.Minio.AccessKey != "" {
		ms, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.FatalErr("error creating minio client", err)
		}
		imageStorage, err := minio_storage.NewImageStorage(ctx, ms, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
		if err != nil {
			log.FatalErr("error preparing image bucket", err)
		}
		images = imageStorage
		checks["minio"] = imageStorage.Ping
	} else {
		log.Warn("minio is not configured, course images are disabled")
	}

	var search courseIndex
	if len(cfg.ES.Hosts) > 0 {
		es, err := elastic.NewElasticClient(cfg.ES.Username, cfg.ES.Password, cfg.ES.Hosts)
		if err != nil {
			log.FatalErr("error connecting to elasticsearch", err)
		}
		searchRepo := elastic.NewCourseSearchRepository(es, cfg.ES.Index)
		if err := searchRepo.CreateIndexIfNotExist(ctx); err != nil {
			log.FatalErr("error creating search index", err)
		}
		search = searchRepo
		checks["elasticsearch"] = searchRepo.Ping
	} else {
		log.Warn("elasticsearch is not configured, course search is disabled")
	}

	var counter middleware.RateCounter
	if cfg.Redis.Addr != "" {
		rdb, err := redis_storage.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.FatalErr("error connecting to redis", err)
		}
		defer rdb.Close()
		counter = redis_storage.NewRateCounter(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn("redis is not configured, rate limiting is disabled")
	}

	var sender notification.Sender
	if cfg.SendGrid.APIKey != "" {
		sender = notification.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
	} else {
		sender = notification.NewConsoleSender(log, cfg.SendGrid.FromEmail)
	}
	notifier := notification.NewNotifier(log, sender)

	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	userRepo := postgres.NewUserPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lectureRepo := postgres.NewLecturePostgres(pg.Pool)
	commentRepo := postgres.NewCommentPostgres(pg.Pool)
	testRepo := postgres.NewTestPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo, notifier)
	comments := comment.NewCommentService(log, lectureRepo, commentRepo)
	lectures := lecturemanagement.NewLectureManagementService(log, courseRepo, lectureRepo, comments)
	u := service.Collection{
		Auth:             authService,
		CourseManagement: management.NewCourseManagementService(log, courseRepo, search, images),
		CourseQuery:      query.NewCourseQueryService(log, courseRepo, lectures, userRepo, images, search),
		Lectures:         lectures,
		Ordering:         ordering.NewOrderingService(log, courseRepo, lectureRepo),
		Comments:         comments,
		Authoring:        authoring.NewAuthoringService(log, courseRepo, lectureRepo, testRepo),
		Scoring:          scoring.NewScoringService(log, lectureRepo, testRepo),
	}

	r := http.InitRoutes(log, u, http.Deps{Config: cfg, Counter: counter, Checks: checks})

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("http server started", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.ErrorErr("http server stopped", err)
		}
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("error shutting down http server", err)
	}
	authService.WaitMails()
}
