// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"gorm.io/gorm"

	"diary-go/internal/model"
)

// NoteRepository 接口定义了文章的数据持久化操作。
// 涉及多条语句的写入（文章行 + 标签行 + 关联行）统一在单个事务内完成。
type NoteRepository interface {
	CreateWithTags(note *model.Note, tags []string) error
	FindByID(id uint) (*model.Note, error)
	List(filterTag string, limit, offset int) ([]model.Note, int64, error)
	UpdateContent(id uint, content string, tags []string, replaceTags bool) error
	Delete(id uint) error
	TagNames(noteID uint) ([]string, error)
	Tags(noteID uint) ([]model.Tag, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository 创建一个新的 NoteRepository 实例。
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// CreateWithTags 在单个事务内插入文章并建立标签关联，标签不存在时惰性创建。
func (r *noteRepository) CreateWithTags(note *model.Note, tags []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return attachTags(tx, note.ID, tags)
	})
}

// FindByID 根据主键查找文章。
func (r *noteRepository) FindByID(id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// List 按创建时间倒序检索文章，filterTag 非空时限定为关联了该标签名的文章。
// 返回的 total 是应用 limit/offset 之前、同一过滤条件下的总记录数。
func (r *noteRepository) List(filterTag string, limit, offset int) ([]model.Note, int64, error) {
	query := r.db.Model(&model.Note{})
	if filterTag != "" {
		query = query.
			Joins("JOIN note_tags nt ON notes.id = nt.note_id").
			Joins("JOIN tags t ON nt.tag_id = t.id").
			Where("t.name = ?", filterTag)
	}

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

// UpdateContent 在单个事务内整体替换文章内容；replaceTags 为 true 时同时重建标签关联。
// 文章不存在时返回 gorm.ErrRecordNotFound。
func (r *noteRepository) UpdateContent(id uint, content string, tags []string, replaceTags bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Note{}).Where("id = ?", id).Update("content", content)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if replaceTags {
			if err := tx.Where("note_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
				return err
			}
			if err := attachTags(tx, id, tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 在单个事务内先清理标签关联再删除文章（手动级联，表结构不声明级联删除）。
// 文章不存在时返回 gorm.ErrRecordNotFound，且不产生任何变更。
func (r *noteRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Note{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 回滚整个事务，保证未命中时不产生任何变更
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// TagNames 返回指定文章当前关联的全部标签名。
func (r *noteRepository) TagNames(noteID uint) ([]string, error) {
	names := make([]string, 0)
	err := r.db.Model(&model.Tag{}).
		Joins("JOIN note_tags nt ON tags.id = nt.tag_id").
		Where("nt.note_id = ?", noteID).
		Pluck("tags.name", &names).Error
	return names, err
}

// Tags 返回指定文章当前关联的全部标签（含 ID）。
func (r *noteRepository) Tags(noteID uint) ([]model.Tag, error) {
	tags := make([]model.Tag, 0)
	err := r.db.
		Joins("JOIN note_tags nt ON tags.id = nt.tag_id").
		Where("nt.note_id = ?", noteID).
		Find(&tags).Error
	return tags, err
}

// attachTags 为文章建立标签关联，标签不存在时先创建（get-or-create）。
func attachTags(tx *gorm.DB, noteID uint, tags []string) error {
	for _, name := range tags {
		tagID, err := ensureTag(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Create(&model.NoteTag{NoteID: noteID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}
