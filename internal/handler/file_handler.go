// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"diary-go/internal/service"
	"diary-go/pkg/log"
	"diary-go/pkg/storage"
)

// FileHandler 负责处理所有与文件管理相关的 API 请求。
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler 创建一个新的 FileHandler 实例。
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload 处理文件上传请求（multipart 表单，字段名 file）。
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "未能獲取上傳的檔案"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	info, err := h.fileService.Upload(c.Request.Context(), fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, service.ErrFileTypeNotAllowed) || errors.Is(err, service.ErrFileTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		log.Error("Upload: failed to upload file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// Download 处理文件下载/预览请求。图片与影片内联预览，其余类型强制下载。
func (h *FileHandler) Download(c *gin.Context) {
	filename := c.Param("filename")

	info, err := h.fileService.Download(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		log.Error("Download: failed to read file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if !info.Inline {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, info.OriginalFilename))
	}
	c.Data(http.StatusOK, info.ContentType, info.Content)
}

// ListAll 处理获取全部文件列表的请求。
func (h *FileHandler) ListAll(c *gin.Context) {
	files, err := h.fileService.ListFiles()
	if err != nil {
		log.Error("ListAll: failed to list files", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// Delete 处理删除文件的请求。
func (h *FileHandler) Delete(c *gin.Context) {
	fileID, err := strconv.ParseUint(c.Param("fileId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "無效的檔案 ID"})
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), uint(fileID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		log.Error("Delete: failed to delete file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
