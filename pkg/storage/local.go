package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore 将文件字节保存在单个平铺目录下，storedName 即文件名。
type LocalStore struct {
	dir string
}

// NewLocalStore 创建一个本地磁盘存储，目录不存在时自动创建。
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// path 拒绝包含路径分隔符的 storedName，保证命名空间平铺。
func (s *LocalStore) path(storedName string) (string, error) {
	if storedName == "" || strings.ContainsAny(storedName, `/\`) || storedName != filepath.Base(storedName) {
		return "", fmt.Errorf("非法的存储键: %q", storedName)
	}
	return filepath.Join(s.dir, storedName), nil
}

// Put 实现 Store 接口。
func (s *LocalStore) Put(ctx context.Context, storedName string, data []byte) error {
	p, err := s.path(storedName)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// Get 实现 Store 接口。
func (s *LocalStore) Get(ctx context.Context, storedName string) ([]byte, error) {
	p, err := s.path(storedName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return data, err
}

// Delete 实现 Store 接口。
func (s *LocalStore) Delete(ctx context.Context, storedName string) error {
	p, err := s.path(storedName)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}

// Exists 实现 Store 接口。
func (s *LocalStore) Exists(ctx context.Context, storedName string) (bool, error) {
	p, err := s.path(storedName)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
