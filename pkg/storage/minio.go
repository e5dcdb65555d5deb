package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"diary-go/internal/config"
	"diary-go/pkg/log"
)

// MinioStore 将文件字节保存在 MinIO 的单个存储桶中，对象名即 storedName。
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore 初始化 MinIO 客户端并确保指定的存储桶存在。
func NewMinioStore(cfg config.MinIOConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStore{client: client, bucket: cfg.BucketName}, nil
}

// Put 实现 Store 接口。
func (s *MinioStore) Put(ctx context.Context, storedName string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, storedName,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Get 实现 Store 接口。
func (s *MinioStore) Get(ctx context.Context, storedName string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, storedName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// MinIO 在首次读取时才报告对象不存在
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete 实现 Store 接口。
func (s *MinioStore) Delete(ctx context.Context, storedName string) error {
	exists, err := s.Exists(ctx, storedName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrObjectNotFound
	}
	return s.client.RemoveObject(ctx, s.bucket, storedName, minio.RemoveObjectOptions{})
}

// Exists 实现 Store 接口。
func (s *MinioStore) Exists(ctx context.Context, storedName string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, storedName, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
