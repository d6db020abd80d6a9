// @title        technotes API
// @version      1.0
// @description  Users and notes for the technotes repair shop.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/technotes/notes-api/internal/api"
	"github.com/technotes/notes-api/internal/api/handler"
	mongodb "github.com/technotes/notes-api/internal/infrastructure/db/mongo"
	"github.com/technotes/notes-api/internal/infrastructure/db/redis"
	"github.com/technotes/notes-api/internal/pkg/config"
	"github.com/technotes/notes-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	// The username cache is optional; the API serves from Mongo alone without it.
	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, username cache disabled")
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty, /users and /notes are unauthenticated")
	}

	svc := api.NewServices(db, rdb, cfg.JWTSecret, cfg.TokenTTL, cfg.Redis.UsernameTTL, log)
	e := api.NewRouter(svc, api.Options{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
		Health:         handler.NewHealthDependenciesHandler(db, rdb),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
