package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsact/internal/config"
	"newsact/internal/database"
	"newsact/internal/handler"
	"newsact/internal/middleware"
	"newsact/internal/repository"
	"newsact/internal/router"
	"newsact/internal/service"
	"newsact/internal/storage"
)

const localUploadsURLPrefix = "/static/uploads"

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	adminRepo := repository.NewAdminRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	regionRepo := repository.NewRegionRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(adminRepo, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	if err := authService.SeedDefaultAdmin(context.Background(), "admin", "admin123"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed default admin: %w", err)
	}

	provider, localUploadsDir, err := selectStorageProvider(context.Background(), cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	postService := service.NewPostService(postRepo)
	regionService := service.NewRegionService(regionRepo)
	analyticsService := service.NewAnalyticsService(postRepo, regionRepo, adminRepo)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Post:      handler.NewPostHandler(postService),
		Region:    handler.NewRegionHandler(regionService),
		Storage:   handler.NewStorageHandler(provider, cfg.MaxUploadSize),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
	}, localUploadsDir)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() { db.Close() },
		},
	}, nil
}

// selectStorageProvider picks the backend exactly once. Remote config that
// turns out unreachable falls back to local storage here, at startup; after
// this point the choice never changes for the process lifetime.
func selectStorageProvider(ctx context.Context, cfg *config.Config) (storage.Provider, string, error) {
	limits := storage.Limits{
		Generic:   cfg.MaxUploadSize,
		Avatar:    cfg.MaxAvatarSize,
		PostImage: cfg.MaxPostImageSize,
	}

	if cfg.RemoteStorageConfigured() {
		s3Provider, err := storage.NewS3Provider(ctx, storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
			Timeout:       cfg.StorageTimeout,
		}, limits)
		if err == nil {
			slog.Info("storage backend selected", "provider", "s3", "bucket", cfg.S3Bucket)
			return s3Provider, "", nil
		}
		slog.Warn("remote storage unavailable, falling back to local", "error", err)
	}

	localProvider, err := storage.NewLocalProvider(cfg.UploadRoot, localUploadsURLPrefix, limits)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize local storage: %w", err)
	}

	slog.Info("storage backend selected", "provider", "local", "root", cfg.UploadRoot)
	return localProvider, cfg.UploadRoot, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain in-flight requests before tearing down their dependencies.
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
