package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/campuslink/backend/config"
    "github.com/campuslink/backend/internal/model"
)

// InitDB 按配置打开数据库并迁移全部表结构
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var dial gorm.Dialector
    switch cfg.Database.Driver {
    case "postgres":
        dial = postgres.Open(cfg.Database.DSN)
    case "sqlite", "":
        dial = sqlite.Open(cfg.Database.DSN)
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }

    db, err := gorm.Open(dial, &gorm.Config{
        Logger: gormlogger.Default.LogMode(gormlogger.Warn),
    })
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }

    if err := AutoMigrate(db); err != nil {
        return nil, err
    }

    sqlDB, err := db.DB()
    if err != nil {
        return nil, err
    }
    if cfg.Database.MaxOpenConns > 0 {
        sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
    }
    if cfg.Database.MaxIdleConns > 0 {
        sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
    }
    return db, nil
}

// AutoMigrate 建表（含点赞复合唯一键等索引）
func AutoMigrate(db *gorm.DB) error {
    if err := db.AutoMigrate(
        &model.User{},
        &model.Post{},
        &model.Comment{},
        &model.PostLike{},
        &model.CommentLike{},
        &model.Hashtag{},
        &model.Connection{},
        &model.Message{},
    ); err != nil {
        return fmt.Errorf("migrate schema: %w", err)
    }
    return nil
}
