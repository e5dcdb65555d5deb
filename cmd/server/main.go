// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"diary-go/internal/config"
	"diary-go/internal/handler"
	"diary-go/internal/middleware"
	"diary-go/internal/repository"
	"diary-go/internal/service"
	"diary-go/pkg/database"
	"diary-go/pkg/log"
	"diary-go/pkg/storage"
)

func main() {
	// 1. 初始化配置
	cfg, err := config.Load("./configs/config.yaml")
	if err != nil {
		panic(err)
	}

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis 和内容存储
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal("数据库初始化失败", err)
	}
	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		log.Fatal("Redis 初始化失败", err)
	}
	store, err := newStore(cfg)
	if err != nil {
		log.Fatal("内容存储初始化失败", err)
	}

	// 4. 初始化 Repository
	fileRepo := repository.NewFileRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	shareRepo := repository.NewShareRepository(db, rdb)

	// 5. 初始化 Service (依赖注入)
	fileService := service.NewFileService(fileRepo, store, cfg.Upload, cfg.Server.BaseURL)
	noteService := service.NewNoteService(noteRepo)
	tagService := service.NewTagService(tagRepo, noteRepo)
	shareService := service.NewShareService(shareRepo, fileRepo)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 7. 注册路由
	r.GET("/health", handler.Health(cfg.Server.Version))

	files := r.Group("/files")
	{
		fileHandler := handler.NewFileHandler(fileService)
		files.POST("/upload/", fileHandler.Upload)
		files.GET("/download/:filename", fileHandler.Download)
		files.GET("/all/", fileHandler.ListAll)
		files.DELETE("/:fileId", fileHandler.Delete)
	}

	share := r.Group("/share")
	{
		shareHandler := handler.NewShareHandler(shareService)
		share.POST("/create/:fileId", shareHandler.Create)
		share.GET("/:shareCode", shareHandler.Resolve)
	}

	notes := r.Group("/notes")
	{
		noteHandler := handler.NewNoteHandler(noteService)
		notes.POST("/create/", noteHandler.Create)
		notes.GET("/all/", noteHandler.ListAll)
		notes.GET("/:id", noteHandler.Get)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	tags := r.Group("/tags")
	{
		tagHandler := handler.NewTagHandler(tagService)
		tags.GET("/all/", tagHandler.ListAll)
		tags.GET("/search/", tagHandler.Search)
		tags.PUT("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
		tags.GET("/:id/notes/", tagHandler.Notes)
	}

	// 8. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("HTTP 服务器关闭失败", err)
	}
	log.Info("服务已优雅关闭")
}

// newStore 根据配置选择内容存储后端。
func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "minio":
		return storage.NewMinioStore(cfg.Storage.MinIO)
	case "local", "":
		return storage.NewLocalStore(cfg.Storage.Local.UploadDir)
	default:
		return nil, fmt.Errorf("不支持的存储后端: %s", cfg.Storage.Backend)
	}
}
