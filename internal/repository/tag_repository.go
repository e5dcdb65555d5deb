// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"errors"

	"gorm.io/gorm"

	"diary-go/internal/model"
)

// TagRepository 接口定义了标签的数据持久化操作。
type TagRepository interface {
	Ensure(name string) (uint, error)
	FindByID(id uint) (*model.Tag, error)
	ListWithCount() ([]model.TagWithCount, error)
	Search(query string, limit int) ([]model.TagWithCount, error)
	Rename(id uint, name string) error
	Delete(id uint) error
	NotesForTag(tagID uint, limit, offset int) ([]model.Note, int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建一个新的 TagRepository 实例。
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Ensure 获取或创建指定名称的标签，返回标签 ID（幂等）。
func (r *tagRepository) Ensure(name string) (uint, error) {
	return ensureTag(r.db, name)
}

// FindByID 根据主键查找标签。
func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListWithCount 左连接聚合出每个标签的引用文章数，零引用的标签也包含在内。
// 排序：note_count 降序，name 升序。
func (r *tagRepository) ListWithCount() ([]model.TagWithCount, error) {
	tags := make([]model.TagWithCount, 0)
	err := r.db.Model(&model.Tag{}).
		Select("tags.id, tags.name, COUNT(nt.note_id) AS note_count").
		Joins("LEFT JOIN note_tags nt ON tags.id = nt.tag_id").
		Group("tags.id, tags.name").
		Order("note_count DESC, tags.name ASC").
		Scan(&tags).Error
	return tags, err
}

// Search 对标签名做不区分大小写的子串匹配，排序与 ListWithCount 一致。
func (r *tagRepository) Search(query string, limit int) ([]model.TagWithCount, error) {
	tags := make([]model.TagWithCount, 0)
	err := r.db.Model(&model.Tag{}).
		Select("tags.id, tags.name, COUNT(nt.note_id) AS note_count").
		Joins("LEFT JOIN note_tags nt ON tags.id = nt.tag_id").
		Where("tags.name LIKE ?", "%"+query+"%").
		Group("tags.id, tags.name").
		Order("note_count DESC, tags.name ASC").
		Limit(limit).
		Scan(&tags).Error
	return tags, err
}

// Rename 更新标签名称，标签不存在时返回 gorm.ErrRecordNotFound。
func (r *tagRepository) Rename(id uint, name string) error {
	result := r.db.Model(&model.Tag{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 在单个事务内先清理标签关联再删除标签本身，不触及文章。
// 标签不存在时返回 gorm.ErrRecordNotFound，且不产生任何变更。
func (r *tagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// NotesForTag 按创建时间倒序检索关联了指定标签的文章，分页契约与文章列表一致。
func (r *tagRepository) NotesForTag(tagID uint, limit, offset int) ([]model.Note, int64, error) {
	query := r.db.Model(&model.Note{}).
		Joins("JOIN note_tags nt ON notes.id = nt.note_id").
		Where("nt.tag_id = ?", tagID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []model.Note
	err := query.Order("notes.created_at desc").Limit(limit).Offset(offset).Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// ensureTag 获取或创建标签（get-or-create），供标签与文章两条写入路径共用。
func ensureTag(tx *gorm.DB, name string) (uint, error) {
	var tag model.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return tag.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	tag = model.Tag{Name: name}
	if err := tx.Create(&tag).Error; err != nil {
		return 0, err
	}
	return tag.ID, nil
}
