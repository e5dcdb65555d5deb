// Package service 包含了应用的业务逻辑层。
package service

import (
	"strings"
	"time"

	"diary-go/internal/model"
	"diary-go/internal/repository"
)

// TagSearchLimit 是标签搜索结果的最大条数。
const TagSearchLimit = 20

// TagRefDTO 是文章标签列表里的标签引用（只含 ID 与名称）。
type TagRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TagNoteDTO 是某个标签下的文章视图，标签列表包含该文章的全部标签，
// 不限于用来圈定范围的那一个。
type TagNoteDTO struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Tags      []TagRefDTO `json:"tags"`
}

// TagService 接口定义了标签管理相关的业务操作。
type TagService interface {
	List() ([]model.TagWithCount, error)
	Search(query string) ([]model.TagWithCount, error)
	Rename(tagID uint, name string) error
	Delete(tagID uint) error
	NotesForTag(tagID uint, limit, offset int) ([]TagNoteDTO, int64, *TagRefDTO, error)
}

type tagService struct {
	tagRepo  repository.TagRepository
	noteRepo repository.NoteRepository
}

// NewTagService 创建一个新的 TagService 实例。
func NewTagService(tagRepo repository.TagRepository, noteRepo repository.NoteRepository) TagService {
	return &tagService{tagRepo: tagRepo, noteRepo: noteRepo}
}

// List 获取全部标签及其引用文章数，零引用的标签也包含在内。
func (s *tagService) List() ([]model.TagWithCount, error) {
	return s.tagRepo.ListWithCount()
}

// Search 对标签名做不区分大小写的子串搜索，最多返回 TagSearchLimit 条。
func (s *tagService) Search(query string) ([]model.TagWithCount, error) {
	return s.tagRepo.Search(query, TagSearchLimit)
}

// Rename 更新标签名称，去除首尾空白后为空视为校验失败。
func (s *tagService) Rename(tagID uint, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankTagName
	}
	return s.tagRepo.Rename(tagID, name)
}

// Delete 删除标签及其全部文章关联（单事务），文章本身不受影响。
func (s *tagService) Delete(tagID uint) error {
	return s.tagRepo.Delete(tagID)
}

// NotesForTag 按创建时间倒序分页获取关联了指定标签的文章，
// 每篇文章附带完整的标签引用列表；标签不存在时返回 gorm.ErrRecordNotFound。
func (s *tagService) NotesForTag(tagID uint, limit, offset int) ([]TagNoteDTO, int64, *TagRefDTO, error) {
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		return nil, 0, nil, err
	}

	if limit <= 0 {
		limit = DefaultNoteLimit
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := s.tagRepo.NotesForTag(tagID, limit, offset)
	if err != nil {
		return nil, 0, nil, err
	}

	dtos := make([]TagNoteDTO, 0, len(notes))
	for i := range notes {
		noteTags, err := s.noteRepo.Tags(notes[i].ID)
		if err != nil {
			return nil, 0, nil, err
		}
		refs := make([]TagRefDTO, 0, len(noteTags))
		for _, t := range noteTags {
			refs = append(refs, TagRefDTO{ID: t.ID, Name: t.Name})
		}
		dtos = append(dtos, TagNoteDTO{
			ID:        notes[i].ID,
			Content:   notes[i].Content,
			CreatedAt: notes[i].CreatedAt,
			Tags:      refs,
		})
	}

	return dtos, total, &TagRefDTO{ID: tag.ID, Name: tag.Name}, nil
}
