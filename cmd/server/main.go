package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jaydeepc/tuas-game/internal/cache"
	"github.com/jaydeepc/tuas-game/internal/config"
	"github.com/jaydeepc/tuas-game/internal/database"
	"github.com/jaydeepc/tuas-game/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	cfg.ApplyLogLevel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The server runs without a database or Redis, losing persistence
	// and the action history stream respectively.
	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.Fatalf("connect database: %v", err)
		}
		if err := database.Migrate(ctx); err != nil {
			logrus.Fatalf("migrate database: %v", err)
		}
	} else {
		logrus.Warn("DATABASE_URL not set, game state will not be persisted")
	}

	if cfg.RedisAddr != "" {
		if err := cache.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB); err != nil {
			logrus.Warnf("connect redis: %v, action history disabled", err)
		}
	}

	srv := server.New(cfg)
	logrus.Infof("listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Routes()); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}
