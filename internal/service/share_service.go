// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"diary-go/internal/model"
	"diary-go/internal/repository"
	"diary-go/pkg/log"
)

// shareCodeBytes 是分享码的随机熵字节数，编码后约 11 个 URL 安全字符。
const shareCodeBytes = 8

// ShareInfoDTO 封装了创建分享链接的返回信息。
type ShareInfoDTO struct {
	ShareCode string `json:"share_code"`
	URL       string `json:"url"`
}

// ShareService 接口定义了文件分享相关的业务操作。
// 分享码一经创建不过期也不可撤销；同一文件可以持有多个独立分享码。
type ShareService interface {
	CreateLink(ctx context.Context, fileID uint) (*ShareInfoDTO, error)
	Resolve(ctx context.Context, shareCode string) (string, error)
}

type shareService struct {
	shareRepo repository.ShareRepository
	fileRepo  repository.FileRepository
}

// NewShareService 创建一个新的 ShareService 实例。
func NewShareService(shareRepo repository.ShareRepository, fileRepo repository.FileRepository) ShareService {
	return &shareService{shareRepo: shareRepo, fileRepo: fileRepo}
}

// CreateLink 为指定文件生成一个新的分享码并持久化。
// 文件不存在时返回 gorm.ErrRecordNotFound；分享码唯一约束冲突的概率可忽略，
// 一旦发生由插入错误直接上抛。
func (s *shareService) CreateLink(ctx context.Context, fileID uint) (*ShareInfoDTO, error) {
	if _, err := s.fileRepo.FindByID(fileID); err != nil {
		return nil, err
	}

	code, err := generateShareCode()
	if err != nil {
		return nil, err
	}

	share := &model.FileShare{FileID: fileID, ShareCode: code}
	if err := s.shareRepo.Create(share); err != nil {
		log.Error("[CreateLink] 保存分享记录失败", err)
		return nil, err
	}

	log.Infof("[CreateLink] 创建分享链接成功, fileID=%d, shareCode=%s", fileID, code)
	return &ShareInfoDTO{
		ShareCode: code,
		URL:       "/share/" + code,
	}, nil
}

// Resolve 将分享码解析为存储文件名，供调用方重定向到下载路径。
// 解析不消耗也不失效分享码。
func (s *shareService) Resolve(ctx context.Context, shareCode string) (string, error) {
	return s.shareRepo.ResolveFilename(ctx, shareCode)
}

// generateShareCode 生成 URL 安全的随机分享码（无填充 base64）。
func generateShareCode() (string, error) {
	buf := make([]byte, shareCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成分享码失败: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
