package lookup

import (
	"errors"

	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrMappingNotFound 零件映射不存在
	ErrMappingNotFound = errors.New("part mapping not found")
)

// Repository 零件映射数据访问层
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建 Repository 实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCodes 根据 (MGC5, 区域) 组合精确查找
// 大小写敏感，不做模糊匹配
func (r *Repository) FindByCodes(mgc5, region string) (*models.PartMapping, error) {
	var mapping models.PartMapping
	err := r.db.Where("mgc5 = ? AND region = ?", mgc5, region).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByPartNumber 根据零件号反向查找所属映射
func (r *Repository) FindByPartNumber(partNumber string) (*models.PartMapping, error) {
	var mapping models.PartMapping
	err := r.db.Where("part_number = ?", partNumber).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindAll 查找全部映射
func (r *Repository) FindAll() ([]*models.PartMapping, error) {
	var mappings []*models.PartMapping
	if err := r.db.Order("mgc5, region").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Count 映射总数
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.PartMapping{}).Count(&total).Error
	return total, err
}
