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

// ShareHandler 负责处理所有与文件分享相关的 API 请求。
type ShareHandler struct {
	shareService service.ShareService
}

// NewShareHandler 创建一个新的 ShareHandler 实例。
func NewShareHandler(shareService service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// Create 处理为指定文件创建分享链接的请求。
func (h *ShareHandler) Create(c *gin.Context) {
	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	info, err := h.shareService.CreateLink(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		log.Error("CreateShare: failed to create share link", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// Resolve 处理分享码访问：解析成功后以 303 重定向到统一的下载路径，
// 所有文件分类都走同一条物理下载路径。
func (h *ShareHandler) Resolve(c *gin.Context) {
	shareCode := c.Param("shareCode")

	filename, err := h.shareService.Resolve(c.Request.Context(), shareCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shared file not found"})
			return
		}
		log.Error("ResolveShare: failed to resolve share code", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/files/download/"+filename)
}
