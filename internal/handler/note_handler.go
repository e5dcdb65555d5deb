// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"diary-go/internal/service"
	"diary-go/pkg/log"
)

// NoteHandler 负责处理所有与文章管理相关的 API 请求。
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler 创建一个新的 NoteHandler 实例。
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteRequest 定义了创建/更新文章 API 的请求体结构。
// Content 为 base64 编码的 Markdown 文本；Tags 使用指针区分「未提供」与「空列表」。
type NoteRequest struct {
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// decodeContent 在 handler 边界完成 base64 解码，返回解码后的 UTF-8 文本。
func decodeContent(req *NoteRequest) (string, bool, string) {
	if req.Content == nil {
		return "", false, "Missing content field"
	}
	decoded, err := base64.StdEncoding.DecodeString(*req.Content)
	if err != nil {
		return "", false, "Invalid base64 content: " + err.Error()
	}
	return string(decoded), true, ""
}

// Create 处理建立新文章的请求。
func (h *NoteHandler) Create(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	content, ok, detail := decodeContent(&req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
		return
	}

	var tags []string
	if req.Tags != nil {
		tags = *req.Tags
	}

	note, err := h.noteService.Create(content, tags)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Empty content after decoding"})
			return
		}
		log.Error("CreateNote: failed to save note", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Markdown saved to database successfully!",
		"note_id":        note.ID,
		"content_length": utf8.RuneCountInString(content),
	})
}

// ListAll 处理获取文章列表的请求，支持按标签过滤与分页。
func (h *NoteHandler) ListAll(c *gin.Context) {
	filterTag := c.Query("tag")
	limit, ok := parseIntQuery(c, "limit", service.DefaultNoteLimit)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}

	notes, total, err := h.noteService.List(filterTag, limit, offset)
	if err != nil {
		log.Error("ListNotes: failed to list notes", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": total})
}

// Get 处理获取指定文章的请求。
func (h *NoteHandler) Get(c *gin.Context) {
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.Get(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}
		log.Error("GetNote: failed to get note", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

// Update 处理更新指定文章的请求。未提供 tags 字段时保留原有标签关联。
func (h *NoteHandler) Update(c *gin.Context) {
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	content, ok, detail := decodeContent(&req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
		return
	}

	var tags []string
	if req.Tags != nil {
		tags = *req.Tags
	}

	if err := h.noteService.Update(noteID, content, tags, req.Tags != nil); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
		case errors.Is(err, service.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Empty content after decoding"})
		default:
			log.Error("UpdateNote: failed to update note", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully"})
}

// Delete 处理删除指定文章的请求。
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.Delete(noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}
		log.Error("DeleteNote: failed to delete note", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

// parseIDParam 解析路径中的整数 ID，失败时直接写出 400 响应。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parseIntQuery 解析查询参数中的整数，缺省时使用 fallback，失败时直接写出 400 响应。
func parseIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return v, true
}
