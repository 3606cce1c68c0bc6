package main

import (
	"context"

	"github.com/caarlos0/env/v11"

	"blogsphere/internal/auth"
	"blogsphere/internal/cache"
	"blogsphere/internal/config"
	"blogsphere/internal/db"
	"blogsphere/internal/logger"
	"blogsphere/internal/notify"
	"blogsphere/internal/repository"
	"blogsphere/internal/service"
)

type seedConfig struct {
	// Source is a file path or http(s) URL; empty uses the bundled fixture.
	Source string `env:"SEED_SOURCE"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("load config", "err", err)
	}
	log := logger.New(cfg.LogLevel).With("component", "seed")

	var sc seedConfig
	if err := env.Parse(&sc); err != nil {
		log.Fatal("parse seed config", "err", err)
	}

	ctx := context.Background()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatal("failed to run migrations", "err", err)
	}
	log.Info("database migrations completed")

	fixture, err := loadFixture(ctx, sc.Source)
	if err != nil {
		log.Fatal("failed to load fixture", "source", sc.Source, "err", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(gormDB), userRepo, notify.NewHub(), log)

	seeder := &Seeder{
		Auth:    service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL), auth.NewTokenStore(cacheClient)),
		Users:   service.NewUserService(userRepo, cacheClient),
		Blogs:   service.NewBlogService(repository.NewBlogRepository(gormDB), userRepo, cacheClient),
		Follows: service.NewFollowService(repository.NewFollowRepository(gormDB), userRepo, notifications, cacheClient, log),
		Lookup:  userRepo.FindByEmail,
		Log:     log,
	}

	sum, err := seeder.Run(ctx, fixture)
	if err != nil {
		log.Fatal("seed failed", "err", err)
	}
	log.Info("seed completed",
		"users_created", sum.UsersCreated,
		"users_existing", sum.UsersExisting,
		"blogs", sum.Blogs,
		"follows", sum.Follows,
	)
}
