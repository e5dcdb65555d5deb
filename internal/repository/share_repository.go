// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"diary-go/internal/model"
	"diary-go/pkg/log"
)

// shareCacheTTL 是分享码解析结果在 Redis 中的缓存时长。
// 分享码不过期也不可撤销，缓存只是为了削减热点分享链接的数据库连接压力。
const shareCacheTTL = time.Hour

// ShareRepository 接口定义了文件分享记录的数据持久化操作。
type ShareRepository interface {
	Create(share *model.FileShare) error
	ResolveFilename(ctx context.Context, shareCode string) (string, error)
}

// shareRepository 是 ShareRepository 接口的 GORM+Redis 实现。
// redisClient 为 nil 时解析直接走数据库。
type shareRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewShareRepository 创建一个新的 ShareRepository 实例。
func NewShareRepository(db *gorm.DB, redisClient *redis.Client) ShareRepository {
	return &shareRepository{db: db, redisClient: redisClient}
}

// getShareCacheKey 生成分享码对应的 Redis 缓存键。
func (r *shareRepository) getShareCacheKey(shareCode string) string {
	return "share:" + shareCode
}

// Create 在数据库中插入一条新的分享记录。
func (r *shareRepository) Create(share *model.FileShare) error {
	return r.db.Create(share).Error
}

// ResolveFilename 将分享码解析为存储文件名。优先读 Redis 缓存，
// 未命中时连表查询并回填缓存；分享码不存在时返回 gorm.ErrRecordNotFound。
func (r *shareRepository) ResolveFilename(ctx context.Context, shareCode string) (string, error) {
	if r.redisClient != nil {
		cached, err := r.redisClient.Get(ctx, r.getShareCacheKey(shareCode)).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			// 缓存故障降级为直接查库
			log.Warnf("读取分享码缓存失败, shareCode=%s, err=%v", shareCode, err)
		}
	}

	var filename string
	err := r.db.Model(&model.File{}).
		Select("files.filename").
		Joins("JOIN file_shares fs ON files.id = fs.file_id").
		Where("fs.share_code = ?", shareCode).
		Limit(1).
		Scan(&filename).Error
	if err != nil {
		return "", err
	}
	if filename == "" {
		return "", gorm.ErrRecordNotFound
	}

	if r.redisClient != nil {
		if err := r.redisClient.Set(ctx, r.getShareCacheKey(shareCode), filename, shareCacheTTL).Err(); err != nil {
			log.Warnf("写入分享码缓存失败, shareCode=%s, err=%v", shareCode, err)
		}
	}
	return filename, nil
}
