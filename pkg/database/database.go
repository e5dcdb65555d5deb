// Package database 负责初始化关系型数据库和 Redis 连接。
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"diary-go/internal/config"
	"diary-go/internal/model"
	"diary-go/pkg/log"
)

// Init 根据配置选择驱动打开数据库连接，并完成表结构迁移。
// sqlite 为默认驱动，此时 DSN 即数据库文件路径；mysql 作为可选驱动保留。
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Infof("数据库连接成功 (driver=%s)", cfg.Driver)
	return db, nil
}

// Migrate 创建或更新业务表结构。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.File{},
		&model.Note{},
		&model.Tag{},
		&model.NoteTag{},
		&model.FileShare{},
	)
}
