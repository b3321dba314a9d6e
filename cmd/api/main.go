package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/maplorix/jobboard-service/internal/api/http"
	"github.com/maplorix/jobboard-service/internal/api/http/handlers"
	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/config"
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/observability"
	"github.com/maplorix/jobboard-service/internal/persistence"
	"github.com/maplorix/jobboard-service/internal/repository"
	"github.com/maplorix/jobboard-service/internal/service"
	"github.com/maplorix/jobboard-service/internal/storage"
	"github.com/maplorix/jobboard-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redisConn := persistence.NewRedis(cfg.Redis, logger)
	defer redisConn.Close()

	resumeStore, err := storage.NewResumeStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes, logger)
	if err != nil {
		logger.Fatal("failed to init resume storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	refreshStore := repository.NewRefreshTokenStore(redisConn.Client)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(cfg.Notification, logger)
	worker.RegisterNotificationHandlers(dispatcher, notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     userRepo,
		ContactRepo:  contactRepo,
		RefreshStore: refreshStore,
	})
	jobService := service.NewJobService(jobRepo, redisConn.Client, dispatcher, logger)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, resumeStore, dispatcher, logger)
	contactService := service.NewContactService(contactRepo, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Upload.MaxSizeBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redisConn, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService, cfg.App.Env),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService, resumeStore),
		Contacts:       handlers.NewContactsHandler(contactService),
		Admin:          handlers.NewAdminHandler(jobService, applicationService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
