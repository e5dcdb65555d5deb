// Package service 包含了应用的业务逻辑层。
package service

import (
	"time"

	"diary-go/internal/model"
	"diary-go/internal/repository"
	"diary-go/pkg/log"
)

// 列表查询的默认分页参数，与原始 API 的缺省值一致。
const (
	DefaultNoteLimit = 50
)

// NoteDTO 是返回给前端的文章视图，在文章行之外附带完整的标签名列表。
type NoteDTO struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

// NoteService 接口定义了文章管理相关的业务操作。
// 文章内容在 handler 边界完成 base64 解码，服务层只接受解码后的 UTF-8 文本。
type NoteService interface {
	Create(content string, tags []string) (*model.Note, error)
	Get(noteID uint) (*NoteDTO, error)
	List(filterTag string, limit, offset int) ([]NoteDTO, int64, error)
	Update(noteID uint, content string, tags []string, replaceTags bool) error
	Delete(noteID uint) error
}

type noteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService 创建一个新的 NoteService 实例。
func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

// Create 创建文章并建立标签关联（单事务），解码后内容为空视为校验失败。
func (s *noteService) Create(content string, tags []string) (*model.Note, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	note := &model.Note{Content: content}
	if err := s.noteRepo.CreateWithTags(note, tags); err != nil {
		log.Error("[CreateNote] 保存文章失败", err)
		return nil, err
	}
	log.Infof("[CreateNote] 文章保存完成，ID: %d", note.ID)
	return note, nil
}

// Get 获取指定文章及其完整标签名列表。
func (s *noteService) Get(noteID uint) (*NoteDTO, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(note)
}

// List 按创建时间倒序分页获取文章，filterTag 非空时按标签名精确过滤。
// total 是过滤后、分页前的总记录数；每篇文章附带各自的完整标签名列表
// （逐篇二次查询，复杂度 O(返回条数)，不做批量合并）。
func (s *noteService) List(filterTag string, limit, offset int) ([]NoteDTO, int64, error) {
	if limit <= 0 {
		limit = DefaultNoteLimit
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := s.noteRepo.List(filterTag, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]NoteDTO, 0, len(notes))
	for i := range notes {
		dto, err := s.toDTO(&notes[i])
		if err != nil {
			return nil, 0, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, total, nil
}

// Update 整体替换文章内容；replaceTags 为 true 时重建标签关联（单事务）。
func (s *noteService) Update(noteID uint, content string, tags []string, replaceTags bool) error {
	if content == "" {
		return ErrEmptyContent
	}
	return s.noteRepo.UpdateContent(noteID, content, tags, replaceTags)
}

// Delete 删除文章，先清理标签关联；标签本身保留（孤儿标签不自动回收）。
func (s *noteService) Delete(noteID uint) error {
	return s.noteRepo.Delete(noteID)
}

func (s *noteService) toDTO(note *model.Note) (*NoteDTO, error) {
	tags, err := s.noteRepo.TagNames(note.ID)
	if err != nil {
		return nil, err
	}
	return &NoteDTO{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		Tags:      tags,
	}, nil
}
