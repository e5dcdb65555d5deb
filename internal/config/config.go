// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
// 配置在进程启动时一次性加载，之后作为不可变值显式传递给各个组件。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"` // 用于拼接文件下载链接的外部访问地址
	Version string `mapstructure:"version"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// DatabaseConfig 存储关系型数据库的配置。
// driver 支持 sqlite（默认，dsn 即数据库文件路径）和 mysql。
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。分享码解析缓存为可选功能，
// enabled 为 false 时解析直接走数据库。
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 存储文件内容存储后端的配置。
// backend 支持 local（平铺目录）和 minio（对象存储）。
type StorageConfig struct {
	Backend string           `mapstructure:"backend"`
	Local   LocalStoreConfig `mapstructure:"local"`
	MinIO   MinIOConfig      `mapstructure:"minio"`
}

// LocalStoreConfig 存储本地磁盘后端的配置。
type LocalStoreConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// UploadConfig 存储文件上传的静态规则：大小上限和扩展名分类表。
type UploadConfig struct {
	MaxContentLength  int64               `mapstructure:"max_content_length"`
	AllowedExtensions map[string][]string `mapstructure:"allowed_extensions"`
}

// FileType 根据扩展名（不含点号）返回文件分类，未匹配时返回 "other"。
func (c UploadConfig) FileType(extension string) string {
	extension = strings.ToLower(extension)
	for fileType, extensions := range c.AllowedExtensions {
		for _, ext := range extensions {
			if ext == extension {
				return fileType
			}
		}
	}
	return "other"
}

// IsAllowedFile 检查文件名的扩展名是否出现在任意一个分类的扩展名集合中。
func (c UploadConfig) IsAllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	return c.FileType(filename[idx+1:]) != "other"
}

// Load 从指定的路径读取 YAML 文件并解析为 Config，同时填充缺省值。
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "local"
	}
	if cfg.Upload.AllowedExtensions == nil {
		cfg.Upload.AllowedExtensions = DefaultAllowedExtensions()
	}
	if cfg.Upload.MaxContentLength == 0 {
		cfg.Upload.MaxContentLength = 100 * 1024 * 1024 // 100MB
	}
	return &cfg, nil
}

// DefaultAllowedExtensions 返回默认的扩展名分类表。
func DefaultAllowedExtensions() map[string][]string {
	return map[string][]string{
		"image":    {"png", "jpg", "jpeg", "gif", "webp"},
		"video":    {"mp4", "webm", "ogg"},
		"audio":    {"mp3", "wav"},
		"document": {"pdf", "doc", "docx", "xls", "xlsx", "txt"},
		"archive":  {"zip", "7z", "rar"},
	}
}
