package database

import (
	"context"

	"github.com/go-redis/redis/v8"

	"diary-go/internal/config"
	"diary-go/pkg/log"
)

// InitRedis 初始化 Redis 客户端连接。
// Redis 仅用作分享码解析缓存，未启用时返回 nil，调用方据此跳过缓存。
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Info("Redis client connected successfully")
	return rdb, nil
}
