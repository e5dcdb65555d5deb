// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务校验类错误，由 handler 层映射为 400。
var (
	// ErrFileTypeNotAllowed 表示文件扩展名不在任何允许的分类中。
	ErrFileTypeNotAllowed = errors.New("不支援的檔案類型")
	// ErrFileTooLarge 表示文件内容超过配置的大小上限。
	ErrFileTooLarge = errors.New("檔案大小超過限制")
	// ErrEmptyContent 表示解码后的文章内容为空。
	ErrEmptyContent = errors.New("empty content after decoding")
	// ErrBlankTagName 表示去除首尾空白后标签名为空。
	ErrBlankTagName = errors.New("標籤名稱不能為空")
)
