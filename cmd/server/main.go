package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/campuslink/backend/config"
    "github.com/campuslink/backend/internal/api"
    "github.com/campuslink/backend/internal/api/handler"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/database"
    "github.com/campuslink/backend/pkg/logger"
    "github.com/campuslink/backend/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
    cfg := must(config.Load())
    if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
        panic(err)
    }
    defer logger.Sync()

    ctx := context.Background()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            panic(err)
        }
        defer sentry.Flush(2 * time.Second)
    }
    if cfg.Tracing.Enabled {
        shutdown := must(tracing.Init(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint))
        defer func() { _ = shutdown(ctx) }()
    }

    db := must(database.InitDB(cfg))

    // redis 缓存可选：地址留空直接跳过
    var cache *redis.Client
    if cfg.Redis.Addr != "" {
        cache = redis.NewClient(&redis.Options{
            Addr:     cfg.Redis.Addr,
            Password: cfg.Redis.Password,
            DB:       cfg.Redis.DB,
        })
        if err := cache.Ping(ctx).Err(); err != nil {
            logger.Warn("redis unreachable, connection cache disabled", zap.Error(err))
            cache = nil
        }
    }

    userRepo := repository.NewUserRepository(db)
    postRepo := repository.NewPostRepository(db)
    commentRepo := repository.NewCommentRepository(db)
    postLikeRepo := repository.NewPostLikeRepository(db)
    commentLikeRepo := repository.NewCommentLikeRepository(db)
    connRepo := repository.NewConnectionRepository(db)
    msgRepo := repository.NewMessageRepository(db)

    formatter := service.NewCommentTreeFormatter(userRepo, commentLikeRepo)
    enricher := service.NewPostEnricher(userRepo, postLikeRepo, commentRepo, formatter)
    postSvc := service.NewPostService(db, postRepo, commentRepo, postLikeRepo, commentLikeRepo, userRepo, enricher)
    connSvc := service.NewConnectionService(connRepo, userRepo, cache, cfg.Redis.ConnectionTTL)
    feedSvc := service.NewFeedService(postRepo, connSvc, enricher)
    userSvc := service.NewUserService(db, userRepo, connSvc)
    msgSvc := service.NewMessageService(msgRepo, userRepo)
    otpSvc := service.NewOTPService(cfg.OTP.TTL)

    h := handler.New(postSvc, feedSvc, connSvc, userSvc, msgSvc, otpSvc)
    r := api.NewRouter(cfg, h)

    srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
    go func() {
        logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("server stopped", zap.Error(err))
            os.Exit(1)
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    logger.Info("shutting down")
    shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error("graceful shutdown failed", zap.Error(err))
    }
}
