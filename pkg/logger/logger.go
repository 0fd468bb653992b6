package logger

import (
    "time"

    "github.com/getsentry/sentry-go"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var (
    log          = zap.NewNop()
    sentryActive bool
)

// Init 初始化全局 zap；dsn 非空时同时上报 Sentry
func Init(level, dsn string) error {
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        lvl = zapcore.InfoLevel
    }
    cfg := zap.NewProductionConfig()
    cfg.Level = zap.NewAtomicLevelAt(lvl)
    l, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return err
    }
    log = l

    if dsn != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
            return err
        }
        sentryActive = true
    }
    return nil
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }

// Error 记录错误日志；Sentry 启用时同步上报
func Error(msg string, fields ...zap.Field) {
    log.Error(msg, fields...)
    if sentryActive {
        sentry.CaptureMessage(msg)
    }
}

// Sync 刷新缓冲日志（进程退出前调用）
func Sync() {
    _ = log.Sync()
    if sentryActive {
        sentry.Flush(2 * time.Second)
    }
}
