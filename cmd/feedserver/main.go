package main

import (
    "context"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/d60-Lab/feedsync/config"
    "github.com/d60-Lab/feedsync/internal/api"
    "github.com/d60-Lab/feedsync/internal/api/handler"
    "github.com/d60-Lab/feedsync/internal/localgw"
    "github.com/d60-Lab/feedsync/internal/pagecache"
    "github.com/d60-Lab/feedsync/pkg/database"
    "github.com/d60-Lab/feedsync/pkg/logger"
    "github.com/d60-Lab/feedsync/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
    cfg := must(config.Load())
    if err := logger.Init(cfg.Log.Level, cfg.Sentry.DSN); err != nil {
        panic(err)
    }
    defer logger.Sync()

    shutdown := must(tracing.Init(context.Background(), "feedsync-localgw", cfg.Trace.OTLPEndpoint))
    defer func() { _ = shutdown(context.Background()) }()

    db := must(database.InitDB(cfg))
    if err := localgw.Migrate(db); err != nil {
        panic(err)
    }

    var cache *pagecache.Cache
    if cfg.Redis.Addr != "" {
        rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
        cache = pagecache.New(rdb, 30*time.Second)
    }
    svc := localgw.NewService(db, cache)

    if os.Getenv("SEED") != "" {
        uid := must(svc.Seed(context.Background(), 50, 200))
        logger.Info("seeded demo data", zap.String("viewer", uid))
    }

    h := handler.NewHandler(svc, cfg.JWT.Secret)
    r := api.NewRouter(h, cfg.Server.Mode)
    logger.Info("feedsync local gateway listening", zap.String("addr", cfg.Server.Addr))
    if err := r.Run(cfg.Server.Addr); err != nil {
        logger.Error("server exited", zap.Error(err))
    }
}
