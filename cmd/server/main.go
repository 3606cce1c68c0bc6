package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "blogsphere/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"blogsphere/internal/auth"
	"blogsphere/internal/cache"
	"blogsphere/internal/config"
	"blogsphere/internal/db"
	"blogsphere/internal/handler"
	"blogsphere/internal/logger"
	"blogsphere/internal/notify"
	"blogsphere/internal/repository"
	"blogsphere/internal/router"
	"blogsphere/internal/service"
	"blogsphere/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Blogsphere API
// @version 1.0
// @description Blogging and social API with follows, comments, notifications and photo galleries.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("load config", "err", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", "err", err)
	}
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal("auto-migrate", "err", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unreachable, continuing without cache", "addr", cfg.Redis.Addr, "err", err)
	}

	photoStore, err := storage.NewPhotoStore(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal("object storage init", "err", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	photoRepo := repository.NewPhotoRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	hub := notify.NewHub()
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	blogService := service.NewBlogService(blogRepo, userRepo, cacheClient)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, hub, log.With("component", "notifications"))
	commentService := service.NewCommentService(commentRepo, blogRepo, notificationService, log.With("component", "comments"))
	followService := service.NewFollowService(followRepo, userRepo, notificationService, cacheClient, log.With("component", "follows"))
	photoService := service.NewPhotoService(photoRepo, userRepo, photoStore, log.With("component", "photos"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Log:        log,
		JWTSecret:  jwtService.Secret(),
		Revocation: authService,
		Registry:   registry,
	}, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Blog:         handler.NewBlogHandler(blogService),
		Comment:      handler.NewCommentHandler(commentService),
		Follow:       handler.NewFollowHandler(followService),
		Notification: handler.NewNotificationHandler(notificationService, log.With("component", "stream")),
		Photo:        handler.NewPhotoHandler(photoService),
	})

	log.Info("swagger documentation available", "url", cfg.SwaggerURL())

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", "err", err)
	}
}
