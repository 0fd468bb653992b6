package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/d60-Lab/feedsync/config"
)

// InitDB 按配置打开数据库（sqlite 用于本地/测试，postgres 用于压测）
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
    switch cfg.Database.Driver {
    case "sqlite":
        return gorm.Open(sqlite.Open(cfg.Database.DSN), gcfg)
    case "postgres":
        return gorm.Open(postgres.Open(cfg.Database.DSN), gcfg)
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }
}
