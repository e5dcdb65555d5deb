// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"diary-go/internal/config"
	"diary-go/internal/model"
	"diary-go/internal/repository"
	"diary-go/pkg/log"
	"diary-go/pkg/storage"
)

// UploadInfoDTO 封装了上传成功后返回给前端的文件信息。
type UploadInfoDTO struct {
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"originalFilename"`
	FileSize         int64  `json:"fileSize"`
	FileType         string `json:"fileType"`
}

// DownloadInfoDTO 封装了文件下载响应所需的信息。
// Inline 为 true 时（图片、影片）浏览器内联预览，否则强制下载并还原原始檔名。
type DownloadInfoDTO struct {
	Content          []byte
	OriginalFilename string
	ContentType      string
	Inline           bool
}

// FileService 接口定义了文件管理相关的业务操作。
type FileService interface {
	Upload(ctx context.Context, originalFilename string, content []byte) (*UploadInfoDTO, error)
	Download(ctx context.Context, filename string) (*DownloadInfoDTO, error)
	ListFiles() ([]model.File, error)
	Delete(ctx context.Context, fileID uint) error
}

type fileService struct {
	fileRepo  repository.FileRepository
	store     storage.Store
	uploadCfg config.UploadConfig
	baseURL   string
}

// NewFileService 创建一个新的 FileService 实例。
func NewFileService(fileRepo repository.FileRepository, store storage.Store, uploadCfg config.UploadConfig, baseURL string) FileService {
	return &fileService{
		fileRepo:  fileRepo,
		store:     store,
		uploadCfg: uploadCfg,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Upload 处理文件上传：校验扩展名与大小，按内容哈希写入存储，再登记元数据。
// 字节写入与目录插入不在同一事务内：两步之间崩溃会留下无目录记录的孤儿文件。
// 相同内容加相同扩展名的重复上传会幂等地覆写同一物理对象，但仍各自产生目录记录。
func (s *fileService) Upload(ctx context.Context, originalFilename string, content []byte) (*UploadInfoDTO, error) {
	log.Infof("[Upload] 开始处理文件上传: %s", originalFilename)

	if !s.uploadCfg.IsAllowedFile(originalFilename) {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalFilename)), ".")
		log.Warnf("[Upload] 不支持的文件类型: %s", ext)
		return nil, fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, ext)
	}
	if int64(len(content)) > s.uploadCfg.MaxContentLength {
		return nil, ErrFileTooLarge
	}

	// 内容哈希即存储标识；相同字节必然得到相同的 storedName
	fileHash := fmt.Sprintf("%x", md5.Sum(content))
	ext := strings.ToLower(filepath.Ext(originalFilename))
	storedName := fileHash + ext
	fileType := s.uploadCfg.FileType(strings.TrimPrefix(ext, "."))
	log.Infof("[Upload] 文件信息: 大小=%dbytes, Hash=%s, 类型=%s", len(content), fileHash, fileType)

	if err := s.store.Put(ctx, storedName, content); err != nil {
		log.Error("[Upload] 写入文件内容失败", err)
		return nil, err
	}

	fileURL := s.baseURL + "/files/download/" + storedName
	record := &model.File{
		URL:              fileURL,
		Filename:         storedName,
		OriginalFilename: originalFilename,
		Size:             int64(len(content)),
		Type:             fileType,
	}
	if err := s.fileRepo.Create(record); err != nil {
		log.Error("[Upload] 插入文件记录失败", err)
		return nil, err
	}

	log.Infof("[Upload] 文件上传完成: %s", storedName)
	return &UploadInfoDTO{
		URL:              fileURL,
		Filename:         storedName,
		OriginalFilename: originalFilename,
		FileSize:         int64(len(content)),
		FileType:         fileType,
	}, nil
}

// Download 读取物理文件内容并决定响应策略：
// image/video 内联预览（content-type 按扩展名拼接），其余类型强制下载。
// 目录记录缺失而对象存在时按扩展名兜底分类（目录与存储之间允许的弱一致窗口）。
func (s *fileService) Download(ctx context.Context, filename string) (*DownloadInfoDTO, error) {
	content, err := s.store.Get(ctx, filename)
	if err != nil {
		return nil, err
	}

	originalFilename := filename
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	fileType := s.uploadCfg.FileType(ext)

	record, err := s.fileRepo.FindByFilename(filename)
	if err == nil {
		originalFilename = record.OriginalFilename
		fileType = record.Type
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else {
		log.Warnf("[Download] 数据库中找不到文件记录: %s", filename)
	}

	if fileType == "image" || fileType == "video" {
		return &DownloadInfoDTO{
			Content:     content,
			ContentType: fileType + "/" + ext,
			Inline:      true,
		}, nil
	}
	return &DownloadInfoDTO{
		Content:          content,
		OriginalFilename: originalFilename,
		ContentType:      "application/octet-stream",
		Inline:           false,
	}, nil
}

// ListFiles 获取全部文件记录，按创建时间倒序。
func (s *fileService) ListFiles() ([]model.File, error) {
	return s.fileRepo.FindAll()
}

// Delete 删除文件：先删物理对象，再删目录记录。
// 物理对象缺失只记录告警，目录记录照常删除；目录删除失败不回滚对象删除。
func (s *fileService) Delete(ctx context.Context, fileID uint) error {
	record, err := s.fileRepo.FindByID(fileID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, record.Filename); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			log.Warnf("[Delete] 实体文件不存在: %s", record.Filename)
		} else {
			return err
		}
	}

	return s.fileRepo.Delete(fileID)
}
