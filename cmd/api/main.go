package main

import (
	"context"
	"fmt"

	"tasktrack-api/config"
	"tasktrack-api/config/minio"
	"tasktrack-api/config/postgre"
	"tasktrack-api/internal/httpserver"
	pkgJWT "tasktrack-api/pkg/jwt"
	"tasktrack-api/pkg/log"
	pkgRedis "tasktrack-api/pkg/redis"
)

// @title TaskTrack API
// @description Task assignment and tracking service with realtime notifications.
// @version 1
// @host localhost:8080
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	jwtMgr, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		TTL:       cfg.JWT.TTL,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize JWT manager: ", err)
		return
	}

	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	redisClient, err := pkgRedis.New(pkgRedis.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer redisClient.Close()
	logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	minioClient, err := minio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MinIO: ", err)
		return
	}
	defer minio.Disconnect(ctx)
	logger.Infof(ctx, "MinIO connected successfully to %s", cfg.MinIO.Endpoint)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Host: cfg.HTTPServer.Host,
		Port: cfg.HTTPServer.Port,
		Mode: cfg.HTTPServer.Mode,

		WSConfig:   cfg.WebSocket,
		JWTManager: jwtMgr,

		PostgresDB:   postgresDB,
		Redis:        redisClient,
		MinIO:        minioClient,
		ReportBucket: cfg.MinIO.ReportBucket,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
