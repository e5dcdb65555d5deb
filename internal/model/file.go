// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// File 对应于数据库中的 'files' 表，是内容存储的元数据部分。
// Filename 为内容哈希加原始扩展名，即物理存储键；文件一经存储不可修改。
type File struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	URL              string    `gorm:"type:varchar(512);not null" json:"url"`
	Filename         string    `gorm:"type:varchar(255);not null;index" json:"filename"`
	OriginalFilename string    `gorm:"type:varchar(255);not null" json:"original_filename"`
	Size             int64     `gorm:"not null" json:"size"`
	Type             string    `gorm:"type:varchar(20);not null" json:"type"` // image/video/audio/document/archive/other
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (File) TableName() string {
	return "files"
}

// FileShare 对应于数据库中的 'file_shares' 表。
// 一个文件可以有多个互相独立的分享码；分享码不过期也不可撤销。
type FileShare struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FileID    uint      `gorm:"not null;index" json:"file_id"`
	ShareCode string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"share_code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (FileShare) TableName() string {
	return "file_shares"
}
