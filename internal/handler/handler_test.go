package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"diary-go/internal/config"
	"diary-go/internal/repository"
	"diary-go/internal/service"
	"diary-go/pkg/database"
	"diary-go/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter 按 main.go 的方式组装一个完整的路由引擎，
// 数据库与存储均落在测试临时目录中。
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	uploadCfg := config.UploadConfig{
		MaxContentLength:  1 << 20,
		AllowedExtensions: config.DefaultAllowedExtensions(),
	}

	fileRepo := repository.NewFileRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	shareRepo := repository.NewShareRepository(db, nil)

	fileService := service.NewFileService(fileRepo, store, uploadCfg, "http://127.0.0.1:8000")
	noteService := service.NewNoteService(noteRepo)
	tagService := service.NewTagService(tagRepo, noteRepo)
	shareService := service.NewShareService(shareRepo, fileRepo)

	r := gin.New()
	r.GET("/health", Health("test"))

	files := r.Group("/files")
	{
		fileHandler := NewFileHandler(fileService)
		files.POST("/upload/", fileHandler.Upload)
		files.GET("/download/:filename", fileHandler.Download)
		files.GET("/all/", fileHandler.ListAll)
		files.DELETE("/:fileId", fileHandler.Delete)
	}

	share := r.Group("/share")
	{
		shareHandler := NewShareHandler(shareService)
		share.POST("/create/:fileId", shareHandler.Create)
		share.GET("/:shareCode", shareHandler.Resolve)
	}

	notes := r.Group("/notes")
	{
		noteHandler := NewNoteHandler(noteService)
		notes.POST("/create/", noteHandler.Create)
		notes.GET("/all/", noteHandler.ListAll)
		notes.GET("/:id", noteHandler.Get)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	tags := r.Group("/tags")
	{
		tagHandler := NewTagHandler(tagService)
		tags.GET("/all/", tagHandler.ListAll)
		tags.GET("/search/", tagHandler.Search)
		tags.PUT("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
		tags.GET("/:id/notes/", tagHandler.Notes)
	}

	return r, db
}

// perform 发送一个请求并返回响应记录器。
func perform(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
