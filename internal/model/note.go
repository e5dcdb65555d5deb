// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Note 对应于数据库中的 'notes' 表，存储解码后的 Markdown 全文。
type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Note) TableName() string {
	return "notes"
}

// Tag 对应于数据库中的 'tags' 表。标签名唯一且大小写敏感，
// 在第一次被文章引用时惰性创建，最后一个引用移除后仍然保留。
type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Tag) TableName() string {
	return "tags"
}

// NoteTag 对应于数据库中的 'note_tags' 关联表，(note_id, tag_id) 为联合主键。
// 关联行的清理由应用层在事务内完成，表结构不声明级联删除。
type NoteTag struct {
	NoteID uint `gorm:"primaryKey" json:"note_id"`
	TagID  uint `gorm:"primaryKey" json:"tag_id"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (NoteTag) TableName() string {
	return "note_tags"
}

// TagWithCount 是标签列表查询的聚合结果，NoteCount 统计引用该标签的文章数。
type TagWithCount struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	NoteCount int64  `json:"note_count"`
}
