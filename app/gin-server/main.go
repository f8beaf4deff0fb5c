package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/folio/config"
	"github.com/yoockh/folio/internal/api/handlers"
	"github.com/yoockh/folio/internal/api/middleware"
	"github.com/yoockh/folio/internal/api/routes"
	"github.com/yoockh/folio/internal/auth"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/repositories/memory"
	mongorepo "github.com/yoockh/folio/internal/repositories/mongo"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/storage"
)

type stores struct {
	about   repositories.DocumentStore[models.About]
	profile repositories.DocumentStore[models.Profile]
	project repositories.DocumentStore[models.Project]
	users   pgrepo.UserRepository
	checks  map[string]handlers.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(cfg, log)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	// Redis serializes activation across instances; one process can do with a local lock.
	var locker lock.Locker = lock.NewLocal()
	var readCache cache.Cache
	ok, err := config.InitRedis(cfg)
	switch {
	case err != nil:
		log.WithError(err).Warn("redis unreachable, activation lock is process-local")
	case ok:
		locker = lock.NewRedis(config.RedisClient, cfg.ActivationLockTTL)
		if cfg.CacheTTL > 0 {
			readCache = cache.NewRedisCache(config.RedisClient)
		}
		st.checks["redis"] = func(ctx context.Context) error { return config.RedisClient.Ping(ctx).Err() }
		log.Info("Redis connected")
	}

	var mediaHandler *handlers.MediaHandler
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCS(context.Background(), cfg.GCSBucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		st.checks["gcs"] = gcs.Ping
		mediaHandler = handlers.NewMediaHandler(services.NewMediaService(gcs))
	} else {
		log.Info("GCS_BUCKET not set, image uploads disabled")
	}

	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET not set, using the development secret")
	}
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTIssuer)

	aboutSvc := services.WithAboutCache(services.NewAboutService(st.about, locker, log), readCache, cfg.CacheTTL, log)
	profileSvc := services.WithProfileCache(services.NewProfileService(st.profile, locker, log), readCache, cfg.CacheTTL, log)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.CORSOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:       tokens,
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRatePerMinute),
		About:        handlers.NewAboutHandler(aboutSvc),
		Profile:      handlers.NewProfileHandler(profileSvc),
		Project:      handlers.NewProjectHandler(services.NewProjectService(st.project)),
		Auth:         handlers.NewAuthHandler(services.NewAuthService(st.users, tokens), cfg.GinMode == gin.ReleaseMode),
		Media:        mediaHandler,
		Health:       handlers.NewHealthHandler(st.checks),
		AdminDir:     cfg.AdminDir,
	})

	srv := &http.Server{
		Addr:              ":" + strings.TrimPrefix(cfg.Port, ":"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).WithField("store", cfg.StoreDriver).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	if config.MongoClient != nil {
		_ = config.MongoClient.Disconnect(ctx)
	}
	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
}

func openStores(cfg *config.Config, log *logrus.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("STORE_DRIVER=memory, data is lost on restart")
		about := memory.New[models.About]()
		return &stores{
			about:   about,
			profile: memory.New[models.Profile](),
			project: memory.New[models.Project](),
			users:   memory.NewUserRepo(),
			checks:  map[string]handlers.Pinger{"store": about.Ping},
		}, nil
	}

	if err := config.InitMongo(cfg); err != nil {
		return nil, err
	}
	if err := config.EnsureMongoIndexes(cfg); err != nil {
		return nil, err
	}
	log.Info("MongoDB connected")

	if err := config.InitPostgres(cfg); err != nil {
		return nil, err
	}
	if err := config.EnsurePostgresSchema(); err != nil {
		return nil, err
	}
	log.Info("PostgreSQL connected")

	db := config.MongoDatabase(cfg)
	about := mongorepo.NewAboutRepo(db)
	return &stores{
		about:   about,
		profile: mongorepo.NewProfileRepo(db),
		project: mongorepo.NewProjectRepo(db),
		users:   pgrepo.NewUserRepo(config.PostgresDB),
		checks: map[string]handlers.Pinger{
			"mongo": about.Ping,
			"postgres": func(ctx context.Context) error {
				sqlDB, err := config.PostgresDB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		},
	}, nil
}
