// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"gorm.io/gorm"

	"diary-go/internal/model"
)

// FileRepository 接口定义了文件目录（元数据）的数据操作方法。
type FileRepository interface {
	Create(file *model.File) error
	FindByID(id uint) (*model.File, error)
	FindByFilename(filename string) (*model.File, error)
	FindAll() ([]model.File, error)
	Delete(id uint) error
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建一个新的 FileRepository 实例。
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create 在数据库中插入一条新的文件记录。
func (r *fileRepository) Create(file *model.File) error {
	return r.db.Create(file).Error
}

// FindByID 根据主键查找文件记录。
func (r *fileRepository) FindByID(id uint) (*model.File, error) {
	var file model.File
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// FindByFilename 根据存储文件名（内容哈希+扩展名）查找文件记录。
// 同一内容重复上传会产生多条同名记录，返回最早的一条。
func (r *fileRepository) FindByFilename(filename string) (*model.File, error) {
	var file model.File
	if err := r.db.Where("filename = ?", filename).Order("id asc").First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// FindAll 检索全部文件记录，按创建时间倒序。
func (r *fileRepository) FindAll() ([]model.File, error) {
	var files []model.File
	err := r.db.Order("created_at desc").Find(&files).Error
	return files, err
}

// Delete 根据主键删除文件记录，记录不存在时返回 gorm.ErrRecordNotFound。
func (r *fileRepository) Delete(id uint) error {
	result := r.db.Delete(&model.File{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
