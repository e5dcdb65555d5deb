// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"diary-go/internal/service"
	"diary-go/pkg/log"
)

// TagHandler 负责处理所有与标签管理相关的 API 请求。
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler 创建一个新的 TagHandler 实例。
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListAll 处理获取全部标签列表的请求。
func (h *TagHandler) ListAll(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		log.Error("ListTags: failed to list tags", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// Search 处理标签搜索请求（子串匹配）。
func (h *TagHandler) Search(c *gin.Context) {
	tags, err := h.tagService.Search(c.Query("query"))
	if err != nil {
		log.Error("SearchTags: failed to search tags", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// UpdateTagRequest 定义了更新标签名称 API 的请求体结构。
type UpdateTagRequest struct {
	Name string `json:"name"`
}

// Update 处理更新标签名称的请求。
func (h *TagHandler) Update(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := h.tagService.Rename(tagID, req.Name); err != nil {
		switch {
		case errors.Is(err, service.ErrBlankTagName):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag not found"})
		default:
			log.Error("UpdateTag: failed to update tag", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag updated successfully"})
}

// Delete 处理删除标签的请求。关联会一并清理，文章不受影响。
func (h *TagHandler) Delete(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag not found"})
			return
		}
		log.Error("DeleteTag: failed to delete tag", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// Notes 处理获取指定标签下文章列表的请求。
func (h *TagHandler) Notes(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, ok := parseIntQuery(c, "limit", service.DefaultNoteLimit)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}

	notes, total, tag, err := h.tagService.NotesForTag(tagID, limit, offset)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag not found"})
			return
		}
		log.Error("TagNotes: failed to list notes for tag", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": total, "tag": tag})
}
