// Package storage 提供按内容标识存储文件字节的能力。
// 存储键（storedName）由上层以内容哈希加扩展名构造，命名空间是平铺的，
// 相同 storedName 意味着相同字节，因此写入总是直接覆盖。
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound 表示指定的存储键下不存在任何对象。
var ErrObjectNotFound = errors.New("storage: object not found")

// Store 接口定义了内容存储后端的操作。
type Store interface {
	// Put 将 data 写入 storedName 指定的位置，已存在时覆盖。
	Put(ctx context.Context, storedName string, data []byte) error
	// Get 返回 storedName 下的原始内容，对象不存在时返回 ErrObjectNotFound。
	Get(ctx context.Context, storedName string) ([]byte, error)
	// Delete 删除物理对象，对象不存在时返回 ErrObjectNotFound。
	Delete(ctx context.Context, storedName string) error
	// Exists 检查对象是否存在。
	Exists(ctx context.Context, storedName string) (bool, error)
}
